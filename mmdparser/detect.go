package mmdparser

import (
	"fmt"
	"strings"

	"oss.terrastruct.com/mmd/mmdmodel"
)

// Detect returns the kind of diagram text declares on its first significant
// line.
func Detect(text string) (mmdmodel.Kind, error) {
	lines := significantLines(text)
	if len(lines) == 0 {
		return "", fmt.Errorf("empty diagram")
	}
	kind, _, err := header(lines[0])
	return kind, err
}

func header(l line) (mmdmodel.Kind, mmdmodel.Direction, error) {
	fields := strings.Fields(l.text)
	keyword := strings.TrimSuffix(fields[0], ";")
	switch keyword {
	case "flowchart", "graph":
		dir := mmdmodel.DirectionTB
		if len(fields) > 1 {
			d, ok := mmdmodel.ParseDirection(strings.TrimSuffix(fields[1], ";"))
			if !ok {
				return "", "", fmt.Errorf("unknown direction %q", fields[1])
			}
			dir = d
		}
		return mmdmodel.KindFlowchart, dir, nil
	case "stateDiagram", "stateDiagram-v2":
		return mmdmodel.KindState, mmdmodel.DirectionTB, nil
	case "erDiagram":
		return mmdmodel.KindER, mmdmodel.DirectionTB, nil
	case "sequenceDiagram":
		return mmdmodel.KindSequence, mmdmodel.DirectionNone, nil
	case "classDiagram", "classDiagram-v2":
		return mmdmodel.KindClass, mmdmodel.DirectionTB, nil
	}
	return "", "", fmt.Errorf("unknown diagram type %q", keyword)
}
