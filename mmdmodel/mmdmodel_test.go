package mmdmodel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/mmd/mmdmodel"
)

func TestNormalizeInnermostWins(t *testing.T) {
	t.Parallel()

	g := mmdmodel.NewGraph(mmdmodel.DirectionTB)
	g.AddNode("a", "", "")
	g.AddNode("b", "", "")
	inner := &mmdmodel.Subgraph{ID: "inner", Nodes: []string{"a", "c"}}
	outer := &mmdmodel.Subgraph{ID: "outer", Nodes: []string{"a", "b", "b"}, Subgraphs: []*mmdmodel.Subgraph{inner}}
	g.Subgraphs = []*mmdmodel.Subgraph{outer}

	g.Normalize()

	assert.Equal(t, []string{"b"}, outer.Nodes)
	assert.Equal(t, []string{"a", "c"}, inner.Nodes)
	assert.NotNil(t, g.Node("c"))
	assert.Equal(t, inner, g.Membership()["a"])
	assert.Equal(t, outer, g.SubgraphParents()["inner"])
}

func TestDirectionOverride(t *testing.T) {
	t.Parallel()

	g := mmdmodel.NewGraph(mmdmodel.DirectionTB)
	child := &mmdmodel.Subgraph{ID: "child", Direction: mmdmodel.DirectionTB}
	parent := &mmdmodel.Subgraph{ID: "parent", Subgraphs: []*mmdmodel.Subgraph{child}}
	g.Subgraphs = []*mmdmodel.Subgraph{parent}
	assert.False(t, g.HasDirectionOverride())

	parent.Direction = mmdmodel.DirectionLR
	assert.True(t, g.HasDirectionOverride())
	assert.Equal(t, mmdmodel.DirectionLR, g.EffectiveDirection(parent))
	assert.Equal(t, mmdmodel.DirectionTB, g.EffectiveDirection(child))
}

func TestSequenceValidate(t *testing.T) {
	t.Parallel()

	s := mmdmodel.NewSequence()
	s.AddActor("A", "", "")
	s.AddActor("B", "Bob", "")
	s.Messages = []*mmdmodel.Message{{From: "A", To: "B"}, {From: "B", To: "A"}}
	s.Blocks = []*mmdmodel.Block{{Type: mmdmodel.BlockAlt, Start: 0, End: 1, Dividers: []mmdmodel.Divider{{Index: 1, Label: "else"}}}}
	assert.NoError(t, s.Validate())
	assert.Equal(t, "Bob", s.Actor("B").Label)
	assert.Equal(t, 1, s.ActorIndex("B"))

	s.Blocks[0].End = 5
	assert.Error(t, s.Validate())

	// empty blocks may sit anywhere up to after the last message
	s.Blocks[0].Start, s.Blocks[0].End, s.Blocks[0].Dividers = 2, 1, nil
	assert.True(t, s.Blocks[0].Empty())
	assert.NoError(t, s.Validate())
	s.Blocks[0].Start, s.Blocks[0].End = 1, -1
	assert.Error(t, s.Validate())

	s.Blocks[0].Start, s.Blocks[0].End = 0, 1
	s.Messages = append(s.Messages, &mmdmodel.Message{From: "A", To: "Z"})
	assert.Error(t, s.Validate())
}

func TestDiagramCheck(t *testing.T) {
	t.Parallel()

	assert.NoError(t, mmdmodel.NewGraphDiagram(mmdmodel.KindER, mmdmodel.NewGraph("")).Check())
	assert.Error(t, (&mmdmodel.Diagram{Kind: mmdmodel.KindClass}).Check())
	assert.Error(t, (&mmdmodel.Diagram{Kind: "pie"}).Check())
}
