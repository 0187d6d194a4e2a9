package ui

// Panel identifies which panel has focus.
type Panel int

const (
	PanelQueue    Panel = iota // merge-request queue
	PanelComments              // comments / detail
)

// AppMode represents the current input mode.
type AppMode int

const (
	ModeNavigation AppMode = iota
	ModeInsert
	ModeOverlay
)

// Layout constants
const (
	minQueueWidth    = 30
	minCommentsWidth = 40
	minTotalWidth    = 70

	queueRatio = 0.38

	statusBarHeight = 1
)

// PanelSizes holds calculated panel dimensions.
type PanelSizes struct {
	QueueWidth    int
	CommentsWidth int
	PanelHeight   int
	TooSmall      bool
}

// CalculatePanelSizes determines panel widths based on terminal dimensions.
func CalculatePanelSizes(termWidth, termHeight int) PanelSizes {
	if termWidth < minTotalWidth {
		return PanelSizes{TooSmall: true}
	}

	panelHeight := termHeight - statusBarHeight
	if panelHeight < 5 {
		return PanelSizes{TooSmall: true}
	}

	queueW := max(minQueueWidth, int(float64(termWidth)*queueRatio))
	commentsW := termWidth - queueW
	if commentsW < minCommentsWidth {
		commentsW = minCommentsWidth
		queueW = termWidth - commentsW
	}

	return PanelSizes{
		QueueWidth:    queueW,
		CommentsWidth: commentsW,
		PanelHeight:   panelHeight,
	}
}

func (p Panel) Next() Panel {
	if p == PanelQueue {
		return PanelComments
	}
	return PanelQueue
}

func (p Panel) String() string {
	switch p {
	case PanelQueue:
		return "Queue"
	case PanelComments:
		return "Comments"
	default:
		return "Unknown"
	}
}
