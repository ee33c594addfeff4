package mmdparser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/mmd/lib/shape"
	"oss.terrastruct.com/mmd/mmdmodel"
	"oss.terrastruct.com/mmd/mmdparser"
)

func TestState(t *testing.T) {
	t.Parallel()

	d, err := mmdparser.Parse(`stateDiagram-v2
	direction LR
	[*] --> Still
	Still --> Moving : push
	Moving --> [*]
	state "Crashed hard" as Crash
	Moving --> Crash
	state Check <<choice>>
	Crash --> Check
	Still : standing still
	note right of Still
	  a long note
	end note
	state Active {
	  [*] --> Idle
	  Idle --> Busy
	}`)
	require.NoError(t, err)
	assert.Equal(t, mmdmodel.KindState, d.Kind)
	g := d.Graph
	assert.Equal(t, mmdmodel.DirectionLR, g.Direction)

	start := g.Node("root_start")
	require.NotNil(t, start)
	assert.Equal(t, "", start.Label)
	assert.Equal(t, shape.CIRCLE_TYPE, start.Shape)
	assert.Equal(t, shape.DOUBLE_CIRCLE_TYPE, g.Node("root_end").Shape)

	assert.Equal(t, "standing still", g.Node("Still").Label)
	assert.Equal(t, shape.ROUNDED_TYPE, g.Node("Still").Shape)
	assert.Equal(t, "Crashed hard", g.Node("Crash").Label)
	assert.Equal(t, shape.DIAMOND_TYPE, g.Node("Check").Shape)

	require.Len(t, g.Subgraphs, 1)
	assert.Equal(t, "Active", g.Subgraphs[0].ID)
	assert.Equal(t, []string{"Active_start", "Idle", "Busy"}, g.Subgraphs[0].Nodes)

	require.Len(t, g.Edges, 7)
	assert.Equal(t, "push", g.Edges[1].Label)
	assert.Equal(t, "root_end", g.Edges[2].Dst)
	assert.Equal(t, "Active_start", g.Edges[5].Src)
}

func TestER(t *testing.T) {
	t.Parallel()

	d, err := mmdparser.Parse(`erDiagram
	CUSTOMER ||--o{ ORDER : places
	ORDER ||--|{ LINE-ITEM : contains
	CUSTOMER }|..|| DELIVERY-ADDRESS : "uses"
	CUSTOMER {
	  string name PK "the name"
	  string   email
	}`)
	require.NoError(t, err)
	g := d.Graph
	assert.Equal(t, []string{"CUSTOMER", "ORDER", "LINE-ITEM", "DELIVERY-ADDRESS"}, g.NodeOrder)
	assert.Equal(t, []string{"string name PK", "string email"}, g.Node("CUSTOMER").Rows)

	require.Len(t, g.Edges, 3)
	assert.Equal(t, mmdmodel.EdgeStyle{
		Line:       mmdmodel.LineSolid,
		ArrowStart: mmdmodel.ArrowExactlyOne,
		ArrowEnd:   mmdmodel.ArrowZeroOrMore,
	}, g.Edges[0].Style)
	assert.Equal(t, "places", g.Edges[0].Label)
	assert.Equal(t, mmdmodel.ArrowOneOrMore, g.Edges[1].Style.ArrowEnd)
	assert.Equal(t, mmdmodel.LineDotted, g.Edges[2].Style.Line)
	assert.Equal(t, mmdmodel.ArrowOneOrMore, g.Edges[2].Style.ArrowStart)
	assert.Equal(t, "uses", g.Edges[2].Label)
}

func TestClass(t *testing.T) {
	t.Parallel()

	d, err := mmdparser.Parse(`classDiagram
	direction RL
	class Animal {
	  <<abstract>>
	  +int age
	  +isMammal() bool
	}
	class List~T~
	<<interface>> Shape
	Animal : +mate()
	Animal <|-- Duck : extends
	Customer "1" --> "*" Ticket
	Duck ..> Pond
	Duck -- Shape
	note for Duck "quacks"`)
	require.NoError(t, err)
	c := d.Class
	assert.Equal(t, mmdmodel.DirectionRL, c.Direction)

	animal := c.Node("Animal")
	require.NotNil(t, animal)
	assert.Equal(t, "abstract", animal.Annotation)
	assert.Equal(t, []string{"+int age"}, animal.Attributes)
	assert.Equal(t, []string{"+isMammal() bool", "+mate()"}, animal.Methods)
	assert.Equal(t, "List<T>", c.Node("List").Label)
	assert.Equal(t, "interface", c.Node("Shape").Annotation)

	require.Len(t, c.Relationships, 4)
	assert.Equal(t, &mmdmodel.Relationship{
		From:   "Animal",
		To:     "Duck",
		Type:   mmdmodel.RelationInheritance,
		Label:  "extends",
		Marker: mmdmodel.MarkerStart,
	}, c.Relationships[0])
	assert.Equal(t, &mmdmodel.Relationship{
		From:            "Customer",
		To:              "Ticket",
		Type:            mmdmodel.RelationAssociation,
		FromCardinality: "1",
		ToCardinality:   "*",
		Marker:          mmdmodel.MarkerEnd,
	}, c.Relationships[1])
	assert.Equal(t, mmdmodel.RelationDependency, c.Relationships[2].Type)
	assert.Equal(t, mmdmodel.RelationLink, c.Relationships[3].Type)
	assert.Equal(t, mmdmodel.MarkerNone, c.Relationships[3].Marker)
}
