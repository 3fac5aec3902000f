package puzzle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePuzzleReplyDirect(t *testing.T) {
	record, err := ParsePuzzleReply(`{"story":"s","question":"q","answer":"a","hints":["1","2","3"]}`)
	require.NoError(t, err)
	assert.Equal(t, &Record{Story: "s", Question: "q", Answer: "a", Hints: []string{"1", "2", "3"}}, record)
	assert.True(t, record.Complete())
}

func TestParsePuzzleReplyExtractsObject(t *testing.T) {
	record, err := ParsePuzzleReply(`Here is the result: {"story":"s","question":"q","answer":"a","hints":[]}`)
	require.NoError(t, err)
	assert.Equal(t, "s", record.Story)
	assert.Equal(t, "a", record.Answer)
	assert.Empty(t, record.Hints)
	assert.False(t, record.Complete())
}

func TestParsePuzzleReplyCodeFence(t *testing.T) {
	record, err := ParsePuzzleReply("```json\n{\"story\":\"s\",\"question\":\"q\",\"answer\":\"a\",\"hints\":[\"1\",\"2\",\"3\"]}\n```")
	require.NoError(t, err)
	assert.Equal(t, "q", record.Question)
}

func TestParsePuzzleReplyStopsAtFirstBalancedObject(t *testing.T) {
	raw := `first {"story":"a } b","question":"say \"{\" please","answer":"x","hints":["1"]} then {"story":"other"}`
	record, err := ParsePuzzleReply(raw)
	require.NoError(t, err)
	assert.Equal(t, "a } b", record.Story)
	assert.Equal(t, `say "{" please`, record.Question)
	assert.Equal(t, "x", record.Answer)
}

func TestParsePuzzleReplyFailures(t *testing.T) {
	for _, raw := range []string{
		"not json at all",
		"",
		`{"story": "unterminated"`,
		"null",
		`["story"]`,
		`"just a string"`,
	} {
		_, err := ParsePuzzleReply(raw)
		var perr *ParseError
		require.True(t, errors.As(err, &perr), "raw=%q", raw)
		assert.Equal(t, raw, perr.Raw)
	}
}

func TestParsePuzzleReplyLooseFieldTypes(t *testing.T) {
	record, err := ParsePuzzleReply(`{"story":"s","question":"How many?","answer":7,"hints":["1",2,true]}`)
	require.NoError(t, err)
	assert.Equal(t, "7", record.Answer)
	assert.Equal(t, []string{"1", "2", "true"}, record.Hints)
	assert.True(t, record.Complete())

	record, err = ParsePuzzleReply(`{"story":42,"question":"q","answer":"a","hints":"look north"}`)
	require.NoError(t, err)
	assert.Equal(t, "42", record.Story)
	assert.Equal(t, []string{"look north"}, record.Hints)
	assert.False(t, record.Complete())

	record, err = ParsePuzzleReply(`{"story":null,"answer":1.5}`)
	require.NoError(t, err)
	assert.Empty(t, record.Story)
	assert.Equal(t, "1.5", record.Answer)
	assert.Nil(t, record.Hints)
}

func TestFirstObjectSpan(t *testing.T) {
	span, ok := firstObjectSpan(`xx {"a":{"b":1}} {"c":2}`)
	require.True(t, ok)
	assert.Equal(t, `{"a":{"b":1}}`, span)

	_, ok = firstObjectSpan("no braces")
	assert.False(t, ok)

	_, ok = firstObjectSpan(`{"a":"}`)
	assert.False(t, ok)
}
