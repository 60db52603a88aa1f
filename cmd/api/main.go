package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/studywell/dashboard/cmd/api/commands"
)

// @title StudyWell API
// @version 1.0
// @description Personal study dashboard: tasks, daily condition, mood journal and today's picks

// @host localhost:8080
// @BasePath /api

func main() {
	rootCmd := &cobra.Command{
		Use:   "studywell",
		Short: "StudyWell dashboard server",
		Long:  `StudyWell keeps a task list next to a daily condition and mood journal and suggests which tasks to work on today.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewDigestCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
