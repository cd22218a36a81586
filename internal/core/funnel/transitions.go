package funnel

import (
	"fmt"
	"sort"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
)

// Node labels of the transition graph.
const (
	LabelStart    = "applications"
	LabelAwaiting = "applied / awaiting response"
)

var statusLabels = map[domain.ApplicationStatus]string{
	domain.StatusOffer:         "offer",
	domain.StatusHired:         "hired",
	domain.StatusDeclinedOffer: "declined offer",
	domain.StatusRejected:      "rejected",
	domain.StatusGhosted:       "ghosted",
	domain.StatusWithdrawn:     "withdrawn",
}

// Ordinal renders n as 1st, 2nd, 3rd, 4th ... 11th, 12th, 13th, 21st.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

func interviewLabel(n int) string {
	return Ordinal(n) + " interview"
}

type label struct {
	text     string
	category domain.NodeCategory
}

// pathLabels turns one application's in-window ledger into its node path,
// without the start node.
func pathLabels(entries []domain.LedgerEntry, w Window) []label {
	inWindow := make([]domain.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if e.Status == domain.StatusDraft || !w.Includes(e.OccurredAt) {
			continue
		}
		inWindow = append(inWindow, e)
	}
	sort.SliceStable(inWindow, func(i, j int) bool { return inWindow[i].Before(inWindow[j]) })

	collapsed := make([]domain.LedgerEntry, 0, len(inWindow))
	for _, e := range inWindow {
		if n := len(collapsed); n > 0 && collapsed[n-1].Status == e.Status {
			continue
		}
		collapsed = append(collapsed, e)
	}

	labels := make([]label, 0, len(collapsed))
	interviews := 0
	for i, e := range collapsed {
		switch e.Status {
		case domain.StatusInterview:
			interviews++
			labels = append(labels, label{text: interviewLabel(interviews), category: domain.NodeCategoryActive})
		case domain.StatusApplied:
			if i == len(collapsed)-1 {
				labels = append(labels, label{text: LabelAwaiting, category: domain.NodeCategoryActive})
			}
		case domain.StatusGhosted:
			labels = append(labels, label{text: statusLabels[e.Status], category: domain.NodeCategoryActive})
		default:
			text, ok := statusLabels[e.Status]
			if !ok {
				text = string(e.Status)
			}
			labels = append(labels, label{text: text, category: domain.NodeCategoryFinished})
		}
	}
	return labels
}

// TransitionGraph builds the weighted flow graph of apps within w. Nodes and
// edges are listed in order of first appearance.
func TransitionGraph(apps []domain.Application, w Window) domain.TransitionGraph {
	graph := domain.TransitionGraph{
		Nodes: []domain.TransitionNode{},
		Edges: []domain.TransitionEdge{},
	}
	nodeSeen := make(map[string]bool)
	edgeIndex := make(map[[2]string]int)

	addNode := func(l label) {
		if nodeSeen[l.text] {
			return
		}
		nodeSeen[l.text] = true
		graph.Nodes = append(graph.Nodes, domain.TransitionNode{ID: l.text, Label: l.text, Category: l.category})
	}

	start := label{text: LabelStart, category: domain.NodeCategoryStart}
	for _, app := range apps {
		path := pathLabels(app.LedgerEntries, w)
		if len(path) == 0 {
			continue
		}
		addNode(start)
		prev := start
		for _, l := range path {
			addNode(l)
			if l.text != prev.text {
				key := [2]string{prev.text, l.text}
				if idx, ok := edgeIndex[key]; ok {
					graph.Edges[idx].Weight++
				} else {
					edgeIndex[key] = len(graph.Edges)
					graph.Edges = append(graph.Edges, domain.TransitionEdge{Source: prev.text, Target: l.text, Weight: 1})
				}
			}
			prev = l
		}
	}
	return graph
}
