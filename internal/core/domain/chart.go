package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeFrame selects the reporting window of the funnel charts.
type TimeFrame string

const (
	TimeFramePastMonth     TimeFrame = "PAST_MONTH"
	TimeFramePast3Months   TimeFrame = "PAST_3_MONTHS"
	TimeFramePast6Months   TimeFrame = "PAST_6_MONTHS"
	TimeFramePast12Months  TimeFrame = "PAST_12_MONTHS"
	TimeFrameThisYear      TimeFrame = "THIS_YEAR"
	TimeFrameAllTime       TimeFrame = "ALL_TIME"
	DefaultChartsTimeFrame           = TimeFramePast3Months
)

// IsValid reports whether tf is a known time frame.
func (tf TimeFrame) IsValid() bool {
	switch tf {
	case TimeFramePastMonth, TimeFramePast3Months, TimeFramePast6Months,
		TimeFramePast12Months, TimeFrameThisYear, TimeFrameAllTime:
		return true
	}
	return false
}

// PeriodCount is one bucket of the status-over-time chart.
type PeriodCount struct {
	Period string                    `json:"period"`
	Start  time.Time                 `json:"start"`
	Counts map[ApplicationStatus]int `json:"counts"`
	Total  int                       `json:"total"`
}

// StatusShare is one slice of the status summary.
type StatusShare struct {
	Status ApplicationStatus `json:"status"`
	Count  int               `json:"count"`
	Share  decimal.Decimal   `json:"share"` // percentage of Total, two places
}

// StatusSummary is the per-status total over a time frame.
type StatusSummary struct {
	TimeFrame TimeFrame     `json:"timeFrame"`
	Shares    []StatusShare `json:"shares"`
	Total     int           `json:"total"`
}

// NodeCategory groups transition graph nodes for display.
type NodeCategory string

const (
	NodeCategoryStart    NodeCategory = "start"
	NodeCategoryActive   NodeCategory = "active"
	NodeCategoryFinished NodeCategory = "finished"
)

// TransitionNode is a labelled state in the transition graph.
type TransitionNode struct {
	ID       string       `json:"id"`
	Label    string       `json:"label"`
	Category NodeCategory `json:"category"`
}

// TransitionEdge counts applications that moved from Source to Target.
type TransitionEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// TransitionGraph is the funnel flow of a user's applications.
type TransitionGraph struct {
	Nodes []TransitionNode `json:"nodes"`
	Edges []TransitionEdge `json:"edges"`
}
