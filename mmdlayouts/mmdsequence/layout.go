// Package mmdsequence lays out sequence diagrams on a timeline: actors side by
// side, messages stacked top to bottom in the order they were declared.
package mmdsequence

import (
	"context"
	"errors"

	"oss.terrastruct.com/util-go/xdefer"

	"oss.terrastruct.com/mmd/lib/textmeasure"
	"oss.terrastruct.com/mmd/mmdmodel"
	"oss.terrastruct.com/mmd/mmdtarget"
)

type Opts struct {
	PaddingX   float64
	PaddingY   float64
	FontFamily string

	// A divider whose label overlaps the label of the message right below it
	// is pushed up when their vertical clearance is under
	// DividerOverlapThreshold, until it reaches DividerOverlapClearance.
	DividerOverlapThreshold float64
	DividerOverlapClearance float64
}

var DefaultOpts = Opts{
	PaddingX:                PADDING_X,
	PaddingY:                PADDING_Y,
	DividerOverlapThreshold: DIVIDER_OVERLAP_THRESHOLD,
	DividerOverlapClearance: DIVIDER_OVERLAP_CLEARANCE,
}

func (o Opts) withDefaults() Opts {
	if o.PaddingX <= 0 {
		o.PaddingX = PADDING_X
	}
	if o.PaddingY <= 0 {
		o.PaddingY = PADDING_Y
	}
	if o.DividerOverlapThreshold <= 0 {
		o.DividerOverlapThreshold = DIVIDER_OVERLAP_THRESHOLD
	}
	if o.DividerOverlapClearance <= 0 {
		o.DividerOverlapClearance = DIVIDER_OVERLAP_CLEARANCE
	}
	return o
}

// Layout positions every actor, message, activation, block and note of seq.
// Messages referencing unknown actors keep their row but are left out of the
// result.
func Layout(ctx context.Context, seq *mmdmodel.Sequence, opts *Opts) (_ *mmdtarget.Sequence, err error) {
	defer xdefer.Errorf(&err, "failed to lay out sequence diagram")

	if seq == nil {
		return nil, errors.New("missing sequence")
	}
	if opts == nil {
		opts = &DefaultOpts
	}

	sd := newSequenceDiagram(ctx, seq, opts.withDefaults(), textmeasure.NewRuler())
	sd.layout()
	return sd.result(), nil
}
