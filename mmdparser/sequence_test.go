package mmdparser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/mmd/mmdmodel"
	"oss.terrastruct.com/mmd/mmdparser"
)

func parseSequence(t *testing.T, text string) *mmdmodel.Sequence {
	t.Helper()
	d, err := mmdparser.Parse(text)
	require.NoError(t, err)
	require.Equal(t, mmdmodel.KindSequence, d.Kind)
	return d.Sequence
}

func TestSequenceLoop(t *testing.T) {
	t.Parallel()

	seq := parseSequence(t, `sequenceDiagram
A->>B: Hi
loop X
A->>B: Retry
end`)
	require.Len(t, seq.Messages, 2)
	assert.Equal(t, "Hi", seq.Messages[0].Label)
	assert.Equal(t, mmdmodel.MessageArrowFilled, seq.Messages[0].Arrow)
	require.Len(t, seq.Blocks, 1)
	assert.Equal(t, mmdmodel.Block{Type: mmdmodel.BlockLoop, Label: "X", Start: 1, End: 1}, *seq.Blocks[0])
	assert.Len(t, seq.Actors, 2)
}

func TestSequenceStatements(t *testing.T) {
	t.Parallel()

	seq := parseSequence(t, `sequenceDiagram
	autonumber
	participant A as Alice
	actor J as John
	A->>+J: Hello John
	J-->>-A: Great!
	A-)J: async
	A--xJ: lost
	A->J
	Note right of J: thinks
	Note over A,J: shared
	alt ok
	  A->>J: yes
	else not ok
	  A->>J: no
	end
	par first
	  opt inner
	    A->>J: nested
	  end
	and second
	  J->>A: back
	end
	activate A
	deactivate A`)

	assert.True(t, seq.Autonumber)
	require.Len(t, seq.Actors, 2)
	assert.Equal(t, &mmdmodel.Actor{ID: "A", Label: "Alice", Kind: mmdmodel.ActorParticipant}, seq.Actors[0])
	assert.Equal(t, &mmdmodel.Actor{ID: "J", Label: "John", Kind: mmdmodel.ActorPerson}, seq.Actors[1])

	require.Len(t, seq.Messages, 9)
	assert.True(t, seq.Messages[0].Activate)
	assert.Equal(t, mmdmodel.LineDotted, seq.Messages[1].Line)
	assert.True(t, seq.Messages[1].Deactivate)
	assert.Equal(t, "J", seq.Messages[1].From)
	assert.Equal(t, mmdmodel.MessageArrowAsync, seq.Messages[2].Arrow)
	assert.Equal(t, mmdmodel.MessageArrowCross, seq.Messages[3].Arrow)
	assert.Equal(t, mmdmodel.LineDotted, seq.Messages[3].Line)
	assert.Equal(t, mmdmodel.MessageArrowOpen, seq.Messages[4].Arrow)
	assert.Equal(t, "", seq.Messages[4].Label)

	require.Len(t, seq.Notes, 2)
	assert.Equal(t, &mmdmodel.Note{Actors: []string{"J"}, Text: "thinks", Position: mmdmodel.NoteRight, After: 4}, seq.Notes[0])
	assert.Equal(t, []string{"A", "J"}, seq.Notes[1].Actors)
	assert.Equal(t, mmdmodel.NoteOver, seq.Notes[1].Position)

	require.Len(t, seq.Blocks, 3)
	alt, par, opt := seq.Blocks[0], seq.Blocks[1], seq.Blocks[2]
	assert.Equal(t, mmdmodel.BlockAlt, alt.Type)
	assert.Equal(t, 5, alt.Start)
	assert.Equal(t, 6, alt.End)
	assert.Equal(t, []mmdmodel.Divider{{Index: 6, Label: "not ok"}}, alt.Dividers)

	// outer blocks come first
	assert.Equal(t, mmdmodel.BlockPar, par.Type)
	assert.Equal(t, 7, par.Start)
	assert.Equal(t, 8, par.End)
	assert.Equal(t, []mmdmodel.Divider{{Index: 8, Label: "second"}}, par.Dividers)
	assert.Equal(t, mmdmodel.BlockOpt, opt.Type)
	assert.Equal(t, 7, opt.Start)
	assert.Equal(t, 7, opt.End)

	assert.Equal(t, []mmdmodel.ActivationMark{
		{Actor: "A", After: 8, Activate: true},
		{Actor: "A", After: 8},
	}, seq.ActivationMarks)
}

func TestSequenceEmptyBlock(t *testing.T) {
	t.Parallel()

	seq := parseSequence(t, "sequenceDiagram\nA->>B: x\nloop never\nend\nalt a\nopt b\nend\nB->>A: y\nend")
	require.Len(t, seq.Blocks, 3)
	assert.Equal(t, mmdmodel.Block{Type: mmdmodel.BlockLoop, Label: "never", Start: 1, End: 0}, *seq.Blocks[0])
	assert.True(t, seq.Blocks[0].Empty())
	// nested empty block keeps its place inside the alt
	assert.Equal(t, mmdmodel.Block{Type: mmdmodel.BlockOpt, Label: "b", Start: 1, End: 0}, *seq.Blocks[2])
	assert.False(t, seq.Blocks[1].Empty())
	assert.Equal(t, 1, seq.Blocks[1].End)
}

func TestSequenceErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		text   string
		expErr string
	}{
		{name: "unclosed", text: "sequenceDiagram\nloop x\nA->>B: y", expErr: "line 3: loop block is never closed"},
		{name: "stray_end", text: "sequenceDiagram\nend", expErr: "line 2: end without block"},
		{name: "else_outside_alt", text: "sequenceDiagram\nloop x\nelse y\nA->>B: z\nend", expErr: "line 3: else outside of a matching block"},
		{name: "garbage", text: "sequenceDiagram\nA B C", expErr: `line 2: unexpected statement "A B C"`},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := mmdparser.Parse(tc.text)
			assert.EqualError(t, err, tc.expErr)
		})
	}
}
