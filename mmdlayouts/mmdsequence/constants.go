package mmdsequence

// canvas padding around the whole diagram
const PADDING_X = 50.
const PADDING_Y = 20.

const MIN_ACTOR_WIDTH = 150.
const ACTOR_HEIGHT = 65.
const ACTOR_LABEL_PADDING = 20.

// min horizontal space between two adjacent actor boxes
const MIN_ACTOR_GAP = 50.

// horizontal pad added to message labels when spreading actors apart
const HORIZONTAL_PAD = 20.

// vertical distance between two consecutive messages
const ROW_HEIGHT = 50.

// extra space before the first message of a block, for the block header
const BLOCK_HEADER_EXTRA = 30.

// extra space before the first message after a divider, for the divider label
const DIVIDER_EXTRA = 30.

// distance from a block's top edge to its first message
const BLOCK_TOP_PADDING = 48.
const BLOCK_BOTTOM_PADDING = 15.
const BLOCK_PADDING_X = 10.
const BLOCK_LABEL_PADDING = 8.

// base distance a divider line sits above its message
const DIVIDER_OFFSET = 30.
const DIVIDER_LABEL_GAP = 2.

// self messages loop out to the right and back down
const SELF_MESSAGE_WIDTH = 40.
const SELF_MESSAGE_HEIGHT = 20.
const SELF_MESSAGE_EXTRA = 30.

const MESSAGE_LABEL_GAP = 4.

const ACTIVATION_WIDTH = 10.

// each nested activation is shifted right by this much
const ACTIVATION_OFFSET = 5.

const NOTE_WIDTH = 150.
const NOTE_GAP = 10.
const NOTE_PADDING = 10.

// when a divider label overlaps its message label horizontally and their
// vertical clearance is under the threshold, the divider is pushed up until
// the clearance reaches DIVIDER_OVERLAP_CLEARANCE
const DIVIDER_OVERLAP_THRESHOLD = 8.
const DIVIDER_OVERLAP_CLEARANCE = 14.

const LABEL_FONT_SIZE = 14
