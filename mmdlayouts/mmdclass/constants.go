package mmdclass

const (
	PADDING_X = 16.

	// vertical padding around the class name
	HEADER_PADDING_Y = 10.

	// room for the <<annotation>> line above the name
	ANNOTATION_EXTRA = 18.

	MEMBER_ROW_HEIGHT    = 20.
	EMPTY_SECTION_HEIGHT = 12.
	SECTION_PADDING_Y    = 8.
	MIN_WIDTH            = 120.

	MEMBER_FONT_SIZE = 14

	NODE_SPACING   = 60.
	RANK_SPACING   = 80.
	CANVAS_PADDING = 20.

	LABEL_NUDGE_STEP  = 8.
	LABEL_NUDGE_TRIES = 10
)
