// Package clicklog models historical search-interaction logs: one Event per
// query issued or document clicked, grouped into sessions.
package clicklog

import "fmt"

// Action distinguishes the two kinds of log events.
type Action string

const (
	ActionQuery Action = "q"
	ActionClick Action = "c"
)

// MaxDocsPerQuery is the maximum result-list length a query event may carry.
const MaxDocsPerQuery = 10

// Event is one normalized row of a click log.
//
// Query events carry the query ID in ActionID plus RegionID and the ordered
// Docs shown to the user. Click events carry the clicked document ID in
// ActionID.
type Event struct {
	SessionID int    `json:"session_id"`
	Time      int    `json:"time"`
	Action    Action `json:"action"`
	ActionID  int    `json:"action_id"`
	RegionID  int    `json:"region_id,omitempty"`
	Docs      []int  `json:"docs,omitempty"`
}

// MalformedLogError reports a data-integrity violation in the event stream,
// such as a click with no preceding query in its session.
type MalformedLogError struct {
	SessionID int
	Reason    string
}

func (e *MalformedLogError) Error() string {
	return fmt.Sprintf("clicklog: malformed log in session %d: %s", e.SessionID, e.Reason)
}

// Impression is one query event together with every click it received before
// the next query in the same session.
type Impression struct {
	SessionID int
	QueryID   int
	Docs      []int
	Clicks    []int
}

// Clicked reports whether the given document was clicked in this impression.
func (imp *Impression) Clicked(docID int) bool {
	for _, id := range imp.Clicks {
		if id == docID {
			return true
		}
	}
	return false
}

// Impressions walks an ordered event stream and groups clicks under the query
// that produced them. A click that arrives before any query in its session is
// a MalformedLogError, as is a query with an empty or over-length result list.
func Impressions(events []Event) ([]Impression, error) {
	var out []Impression
	var cur *Impression

	for _, ev := range events {
		switch ev.Action {
		case ActionQuery:
			if len(ev.Docs) == 0 {
				return nil, &MalformedLogError{SessionID: ev.SessionID, Reason: "query with empty result list"}
			}
			if len(ev.Docs) > MaxDocsPerQuery {
				return nil, &MalformedLogError{
					SessionID: ev.SessionID,
					Reason:    fmt.Sprintf("query with %d results, maximum is %d", len(ev.Docs), MaxDocsPerQuery),
				}
			}
			if cur != nil {
				out = append(out, *cur)
			}
			cur = &Impression{
				SessionID: ev.SessionID,
				QueryID:   ev.ActionID,
				Docs:      ev.Docs,
			}
		case ActionClick:
			if cur == nil || cur.SessionID != ev.SessionID {
				return nil, &MalformedLogError{SessionID: ev.SessionID, Reason: "click without preceding query"}
			}
			cur.Clicks = append(cur.Clicks, ev.ActionID)
		default:
			return nil, &MalformedLogError{SessionID: ev.SessionID, Reason: fmt.Sprintf("unknown action %q", ev.Action)}
		}
	}
	if cur != nil {
		out = append(out, *cur)
	}
	return out, nil
}
