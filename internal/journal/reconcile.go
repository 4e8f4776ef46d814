package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/arweave-go/uploader/internal/arnet"
	"github.com/arweave-go/uploader/pkg/arerr"
)

// StatusFetcher is the subset of *arnet.Client that Update needs, so
// tests can substitute a mock without pulling in the HTTP stack.
type StatusFetcher interface {
	GetStatus(ctx context.Context, id string) (int, []byte, error)
}

// Update reads the existing status for path, fetches its remote
// confirmation state, and re-writes the record. The HTTP call happens
// before the disk write so that a failed write leaves the on-disk record
// unchanged while still surfacing the error to the caller.
func Update(ctx context.Context, logDir, path string, client StatusFetcher) (Status, error) {
	status, err := Read(logDir, path)
	if err != nil {
		return Status{}, err
	}

	code, body, err := client.GetStatus(ctx, status.ID)
	if err != nil {
		return Status{}, err
	}

	status.LastModified = time.Now().UTC()

	switch code {
	case http.StatusOK:
		trimmed := strings.Trim(strings.TrimSpace(string(body)), `"`)
		if trimmed == "Pending" {
			status.Status = Pending
			status.RawStatus = nil
		} else {
			var raw RawStatus
			if err := json.Unmarshal(body, &raw); err != nil {
				return Status{}, &arerr.MalformedResponse{Op: "update_status", Body: string(body), Err: err}
			}
			status.Status = Confirmed
			status.RawStatus = &raw
		}
	case http.StatusAccepted:
		status.Status = Pending
	case http.StatusNotFound:
		status.Status = NotFound
	default:
		return Status{}, &arerr.UnexpectedStatus{Code: code}
	}

	if err := Write(logDir, status); err != nil {
		return Status{}, err
	}
	return status, nil
}

// Filter returns the subset of statuses whose Status is in want (when want
// is non-empty) AND whose confirmation count is <= maxConfirms (when
// maxConfirms is non-nil). Omitting both filters returns everything.
// A status with no raw_status is treated as having 0 confirmations.
func Filter(statuses []Status, want []Kind, maxConfirms *int64) []Status {
	var wantSet map[Kind]bool
	if len(want) > 0 {
		wantSet = make(map[Kind]bool, len(want))
		for _, k := range want {
			wantSet[k] = true
		}
	}

	out := make([]Status, 0, len(statuses))
	for _, s := range statuses {
		if wantSet != nil && !wantSet[s.Status] {
			continue
		}
		if maxConfirms != nil && s.confirmations() > *maxConfirms {
			continue
		}
		out = append(out, s)
	}
	return out
}

// SelectForRetry returns the file paths of statuses that did not reach the
// network or were explicitly marked Failed — the set a caller would
// re-drive through the upload pipeline. This only selects; it never
// re-uploads automatically.
func SelectForRetry(statuses []Status) []string {
	var paths []string
	for _, s := range statuses {
		if s.Status == NotFound || s.Status == Failed {
			paths = append(paths, s.FilePath)
		}
	}
	return paths
}

const summaryRuleWidth = 29

// Summary renders a fixed-format table counting Submitted, Pending,
// NotFound, and Confirmed statuses plus a Total, always in that row
// order even when a count is zero.
func Summary(statuses []Status) string {
	counts := map[Kind]int{}
	for _, s := range statuses {
		counts[s.Status]++
	}

	var b strings.Builder
	row := func(label string, count int) {
		fmt.Fprintf(&b, "%-15s%10d\n", label, count)
	}

	row(string(Submitted), counts[Submitted])
	row(string(Pending), counts[Pending])
	row(string(NotFound), counts[NotFound])
	row(string(Confirmed), counts[Confirmed])
	b.WriteString(strings.Repeat("-", summaryRuleWidth))
	b.WriteString("\n")
	row("Total", len(statuses))

	return b.String()
}
