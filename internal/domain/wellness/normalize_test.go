package wellness

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCondition(t *testing.T) {
	cases := []struct {
		name string
		in   Value
		want int
		ok   bool
	}{
		{"english good", Text("good"), 3, true},
		{"japanese good", Text("良い"), 3, true},
		{"japanese normal", Text("普通"), 2, true},
		{"japanese bad", Text("悪い"), 1, true},
		{"english bad", Text("bad"), 1, true},
		{"number", Number(2), 2, true},
		{"number out of range", Number(5), 0, false},
		{"zero", Number(0), 0, false},
		{"fraction", Number(2.5), 0, false},
		{"unknown label", Text("x"), 0, false},
		{"case sensitive", Text("Good"), 0, false},
		{"absent", Value{}, 0, false},
		{"other", Value{Kind: KindOther}, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizeCondition(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeMood(t *testing.T) {
	cases := []struct {
		in   Value
		want int
		ok   bool
	}{
		{Text("😄"), 5, true},
		{Text("🙂"), 4, true},
		{Text("😐"), 3, true},
		{Text("😕"), 2, true},
		{Text("😞"), 1, true},
		{Text("very_good"), 5, true},
		{Text("good"), 4, true},
		{Text("neutral"), 3, true},
		{Text("bad"), 2, true},
		{Text("very_bad"), 1, true},
		{Number(1), 1, true},
		{Number(5), 5, true},
		{Number(6), 0, false},
		{Text("great"), 0, false},
		{Value{}, 0, false},
	}

	for _, tc := range cases {
		got, ok := NormalizeMood(tc.in)
		assert.Equal(t, tc.ok, ok, "%+v", tc.in)
		assert.Equal(t, tc.want, got, "%+v", tc.in)
	}
}

func TestValue_UnmarshalJSON(t *testing.T) {
	var body struct {
		A Value `json:"a"`
		B Value `json:"b"`
		C Value `json:"c"`
		D Value `json:"d"`
		E Value `json:"e"`
		F Value `json:"f"`
	}
	raw := `{"a": 3, "b": "良い", "c": null, "d": true, "e": {"x": 1}, "f": -1.5}`
	require.NoError(t, json.Unmarshal([]byte(raw), &body))

	assert.Equal(t, Number(3), body.A)
	assert.Equal(t, Text("良い"), body.B)
	assert.Equal(t, KindAbsent, body.C.Kind)
	assert.Equal(t, KindOther, body.D.Kind)
	assert.Equal(t, KindOther, body.E.Kind)
	assert.Equal(t, Number(-1.5), body.F)

	// Missing keys stay zero-valued, which is KindAbsent.
	var empty struct {
		A Value `json:"a"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &empty))
	assert.Equal(t, KindAbsent, empty.A.Kind)
}

func TestMoodEmoji(t *testing.T) {
	assert.Equal(t, "😄", MoodEmoji(5))
	assert.Equal(t, "😞", MoodEmoji(1))
	assert.Equal(t, "—", MoodEmoji(0))
}
