package scan

import (
	"context"
	"sync"

	"github.com/roobyn/sap-bi/internal/logging"
	"github.com/roobyn/sap-bi/pkg/biprws"
)

// Walker scans all Webi reports directly inside one folder. Entries of
// any other type are skipped; sub-folders are not descended into.
type Walker struct {
	client    *biprws.Client
	inspector *Inspector
	log       logging.InternalLogger

	// ContinueOnError records failing reports instead of aborting the
	// walk on the first one.
	ContinueOnError bool

	// Workers caps concurrent report inspections. Values below 2 keep
	// the walk strictly sequential.
	Workers int
}

func NewWalker(client *biprws.Client, log logging.InternalLogger) *Walker {
	return &Walker{
		client:    client,
		inspector: NewInspector(client),
		log:       log,
	}
}

// WalkFolder lists the folder's children, filters entries of type
// exactly "Webi" and inspects each one with the same token and object
// names. Records keep per-report order, reports keep folder-listing
// order — also when inspections run concurrently, since results are
// reassembled by entry index rather than arrival order.
//
// Without ContinueOnError the first failing report aborts the walk with
// an *InspectError. With it, failures are returned alongside the records
// and the walk covers every report.
func (w *Walker) WalkFolder(
	ctx context.Context,
	token, folderID string,
	objectNames []string,
) ([]MatchRecord, []ReportFailure, error) {
	entries, err := w.client.Children(ctx, token, folderID)
	if err != nil {
		return nil, nil, err
	}

	var reports []biprws.FolderEntry
	for _, entry := range entries {
		if entry.Type == biprws.EntryTypeWebi {
			reports = append(reports, entry)
		} else {
			w.log.Info("skipping %q (type %q)", entry.Name, entry.Type)
		}
	}
	w.log.Info("folder %s: %d of %d entries are Webi reports", folderID, len(reports), len(entries))

	perReport := make([][]MatchRecord, len(reports))
	errs := make([]error, len(reports))

	if w.Workers > 1 {
		w.inspectConcurrently(ctx, token, reports, objectNames, perReport, errs)
	} else {
		for idx, entry := range reports {
			perReport[idx], errs[idx] = w.inspectOne(ctx, token, entry, objectNames)
			if errs[idx] != nil && !w.ContinueOnError {
				break
			}
		}
	}

	var records []MatchRecord
	var failures []ReportFailure
	for idx, entry := range reports {
		if err := errs[idx]; err != nil {
			if !w.ContinueOnError {
				return nil, nil, &InspectError{ReportID: entry.ID, Err: err}
			}
			w.log.Error("report %q (%s) failed: %v", entry.Name, entry.ID, err)
			failures = append(failures, ReportFailure{
				ReportID:   entry.ID,
				ReportName: entry.Name,
				Err:        err,
				Message:    err.Error(),
			})
			continue
		}
		records = append(records, perReport[idx]...)
	}
	return records, failures, nil
}

func (w *Walker) inspectOne(
	ctx context.Context,
	token string,
	entry biprws.FolderEntry,
	objectNames []string,
) ([]MatchRecord, error) {
	w.log.Info("inspecting report %q (%s)", entry.Name, entry.ID)
	return w.inspector.InspectReport(ctx, token, entry.ID, objectNames)
}

// inspectConcurrently fans the reports out over w.Workers goroutines.
// The token is only ever read, so no synchronization is needed beyond
// the work channel; each slot of perReport/errs is owned by exactly one
// report index.
func (w *Walker) inspectConcurrently(
	ctx context.Context,
	token string,
	reports []biprws.FolderEntry,
	objectNames []string,
	perReport [][]MatchRecord,
	errs []error,
) {
	workers := w.Workers
	if workers > len(reports) {
		workers = len(reports)
	}

	work := make(chan int)
	var wg sync.WaitGroup
	for n := 0; n < workers; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				perReport[idx], errs[idx] = w.inspectOne(ctx, token, reports[idx], objectNames)
			}
		}()
	}
	for idx := range reports {
		work <- idx
	}
	close(work)
	wg.Wait()
}
