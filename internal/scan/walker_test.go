package scan

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"github.com/roobyn/sap-bi/internal/logging"
	"github.com/roobyn/sap-bi/pkg/biprws"
)

// populate fills the fake with the end-to-end scenario: folder 123456
// holds one Webi report and one Crystal report; only the Webi one uses
// "Revenue".
func populate(fake *fakeServer) {
	fake.folders["123456"] = []biprws.FolderEntry{
		{ID: "1", Name: "Sales", Type: "Webi"},
		{ID: "2", Name: "Legacy", Type: "Crystal"},
	}
	fake.documents["1"] = biprws.DocumentInfo{ID: "1", Name: "Sales", Path: "/Finance"}
	fake.providers["1"] = []biprws.DataProviderInfo{{ID: "DP0", Name: "DP1"}}
	fake.specs["1/DP0"] = specWith("Revenue")
}

func TestWalkFolder(t *testing.T) {
	fake := newFakeServer(t)
	populate(fake)
	cli, stop := fake.start()
	defer stop()

	w := NewWalker(cli, logging.NopLogger{})
	records, failures, err := w.WalkFolder(context.Background(), "tok", "123456", []string{"Revenue"})
	if err != nil {
		t.Fatalf("WalkFolder() unexpected error: %v", err)
	}
	if len(failures) != 0 {
		t.Errorf("WalkFolder() failures = %+v, want none", failures)
	}

	want := []MatchRecord{
		{ReportPath: "/Finance", ReportName: "Sales", DataProvider: "DP1", ObjectName: "Revenue"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("WalkFolder() = %+v, want %+v", records, want)
	}

	// the Crystal entry must never be queried
	if n := fake.fetched("2"); n != 0 {
		t.Errorf("report 2 (Crystal) was fetched %d times, want 0", n)
	}
	if n := fake.fetched("1"); n != 1 {
		t.Errorf("report 1 (Webi) was fetched %d times, want 1", n)
	}
}

func TestWalkFolderAbortsOnFailure(t *testing.T) {
	fake := newFakeServer(t)
	populate(fake)
	fake.folders["123456"] = append(fake.folders["123456"],
		biprws.FolderEntry{ID: "3", Name: "Broken", Type: "Webi"})
	fake.failDocs["3"] = http.StatusInternalServerError

	cli, stop := fake.start()
	defer stop()

	w := NewWalker(cli, logging.NopLogger{})
	_, _, err := w.WalkFolder(context.Background(), "tok", "123456", []string{"Revenue"})

	var inspectErr *InspectError
	if !errors.As(err, &inspectErr) {
		t.Fatalf("WalkFolder() error = %v, want *InspectError", err)
	}
	if inspectErr.ReportID != "3" {
		t.Errorf("InspectError.ReportID = %q, want 3", inspectErr.ReportID)
	}
}

func TestWalkFolderContinueOnError(t *testing.T) {
	fake := newFakeServer(t)
	fake.folders["123456"] = []biprws.FolderEntry{
		{ID: "3", Name: "Broken", Type: "Webi"},
		{ID: "1", Name: "Sales", Type: "Webi"},
	}
	fake.documents["1"] = biprws.DocumentInfo{ID: "1", Name: "Sales", Path: "/Finance"}
	fake.providers["1"] = []biprws.DataProviderInfo{{ID: "DP0", Name: "DP1"}}
	fake.specs["1/DP0"] = specWith("Revenue")
	fake.failDocs["3"] = http.StatusInternalServerError

	cli, stop := fake.start()
	defer stop()

	w := NewWalker(cli, logging.NopLogger{})
	w.ContinueOnError = true
	records, failures, err := w.WalkFolder(context.Background(), "tok", "123456", []string{"Revenue"})
	if err != nil {
		t.Fatalf("WalkFolder() unexpected error: %v", err)
	}

	if len(records) != 1 || records[0].ReportName != "Sales" {
		t.Errorf("WalkFolder() records = %+v, want one record for Sales", records)
	}
	if len(failures) != 1 || failures[0].ReportID != "3" {
		t.Fatalf("WalkFolder() failures = %+v, want one for report 3", failures)
	}
}

func TestWalkFolderUnknownFolder(t *testing.T) {
	fake := newFakeServer(t)
	cli, stop := fake.start()
	defer stop()

	w := NewWalker(cli, logging.NopLogger{})
	_, _, err := w.WalkFolder(context.Background(), "tok", "999", []string{"Revenue"})

	var notFound *biprws.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("WalkFolder() error = %v, want *NotFoundError", err)
	}
}

// Concurrent walks must produce the records in folder-listing order, not
// arrival order.
func TestWalkFolderConcurrentOrdering(t *testing.T) {
	fake := newFakeServer(t)

	var entries []biprws.FolderEntry
	for _, id := range []string{"10", "11", "12", "13", "14"} {
		entries = append(entries, biprws.FolderEntry{ID: id, Name: "Report " + id, Type: "Webi"})
		fake.documents[id] = biprws.DocumentInfo{ID: id, Name: "Report " + id, Path: "/Reports"}
		fake.providers[id] = []biprws.DataProviderInfo{{ID: "DP0", Name: "DP"}}
		fake.specs[id+"/DP0"] = specWith("Revenue")
	}
	fake.folders["777"] = entries

	cli, stop := fake.start()
	defer stop()

	w := NewWalker(cli, logging.NopLogger{})
	w.Workers = 4
	records, failures, err := w.WalkFolder(context.Background(), "tok", "777", []string{"Revenue"})
	if err != nil {
		t.Fatalf("WalkFolder() unexpected error: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("WalkFolder() failures = %+v, want none", failures)
	}

	var names []string
	for _, rec := range records {
		names = append(names, rec.ReportName)
	}
	want := []string{"Report 10", "Report 11", "Report 12", "Report 13", "Report 14"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("WalkFolder() report order = %v, want %v", names, want)
	}
}
