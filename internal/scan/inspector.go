package scan

import (
	"context"
	"fmt"

	"github.com/roobyn/sap-bi/pkg/biprws"
)

// Inspector scans single reports. It holds no state beyond the client;
// the session token is passed per call and never mutated.
type Inspector struct {
	client *biprws.Client
}

func NewInspector(client *biprws.Client) *Inspector {
	return &Inspector{client: client}
}

// InspectReport fetches a report's metadata and data providers, then
// scans each provider's query specification for the requested object
// names. Matching is exact and case-sensitive: "Revenue" matches neither
// "revenue" nor "Revenue Total".
//
// Records are ordered by data provider, then requested name, then
// specification order, so output is deterministic for deterministic
// server responses. Any failing sub-request aborts the inspection with a
// typed error from the client layer.
func (i *Inspector) InspectReport(
	ctx context.Context,
	token, reportID string,
	objectNames []string,
) ([]MatchRecord, error) {
	doc, err := i.client.Document(ctx, token, reportID)
	if err != nil {
		return nil, err
	}

	providers, err := i.client.DataProviders(ctx, token, reportID)
	if err != nil {
		return nil, err
	}

	var records []MatchRecord
	for _, dp := range providers {
		spec, err := i.client.DataProviderSpec(ctx, token, reportID, dp.ID)
		if err != nil {
			return nil, err
		}
		results := spec.ResultObjects()
		for _, wanted := range objectNames {
			for _, obj := range results {
				if obj.Name == wanted {
					records = append(records, MatchRecord{
						ReportPath:   doc.Path,
						ReportName:   doc.Name,
						DataProvider: dp.Name,
						ObjectName:   obj.Name,
					})
				}
			}
		}
	}
	return records, nil
}

// InspectError ties an inspection failure to the report it happened on.
type InspectError struct {
	ReportID string
	Err      error
}

func (e *InspectError) Error() string {
	return fmt.Sprintf("inspecting report %s: %v", e.ReportID, e.Err)
}

func (e *InspectError) Unwrap() error {
	return e.Err
}
