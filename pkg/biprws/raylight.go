package biprws

import (
	"context"
	"fmt"
)

// raylightPath is the API namespace for Web Intelligence document
// operations.
const raylightPath = "/raylight/v1"

// DocumentInfo is the subset of raylight document metadata the scanner
// needs. The numeric ID is distinct from the alphanumeric CUID.
type DocumentInfo struct {
	ID   string `json:"id"`
	CUID string `json:"cuid"`
	Name string `json:"name"`
	Path string `json:"path"`
}

type documentResponse struct {
	Document DocumentInfo `json:"document"`
}

// DataProviderInfo identifies one query definition embedded in a
// document.
type DataProviderInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// raylight wraps list responses in a singular-keyed envelope.
type dataProvidersResponse struct {
	DataProviders struct {
		DataProvider []DataProviderInfo `json:"dataprovider"`
	} `json:"dataproviders"`
}

// Document fetches metadata for one Web Intelligence document.
func (c *Client) Document(ctx context.Context, token, documentID string) (DocumentInfo, error) {
	url := fmt.Sprintf("%s%s/documents/%s", c.baseURL, raylightPath, documentID)
	var resp documentResponse
	if err := c.getJSON(ctx, token, url, &resp); err != nil {
		return DocumentInfo{}, fmt.Errorf("fetching document %s: %w", documentID, err)
	}
	return resp.Document, nil
}

// DataProviders lists the data providers of a document.
func (c *Client) DataProviders(ctx context.Context, token, documentID string) ([]DataProviderInfo, error) {
	url := fmt.Sprintf("%s%s/documents/%s/dataproviders", c.baseURL, raylightPath, documentID)
	var resp dataProvidersResponse
	if err := c.getJSON(ctx, token, url, &resp); err != nil {
		return nil, fmt.Errorf("listing data providers of document %s: %w", documentID, err)
	}
	return resp.DataProviders.DataProvider, nil
}

// DataProviderSpec fetches the XML query specification of one data
// provider.
func (c *Client) DataProviderSpec(ctx context.Context, token, documentID, providerID string) (QuerySpec, error) {
	url := fmt.Sprintf("%s%s/documents/%s/dataproviders/%s/specification",
		c.baseURL, raylightPath, documentID, providerID)
	var spec QuerySpec
	if err := c.getXML(ctx, token, url, &spec); err != nil {
		return QuerySpec{}, fmt.Errorf("fetching specification of data provider %s (document %s): %w",
			providerID, documentID, err)
	}
	return spec, nil
}
