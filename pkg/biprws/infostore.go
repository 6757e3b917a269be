package biprws

import (
	"context"
	"fmt"
)

// EntryTypeWebi is the infostore type tag of Web Intelligence documents.
// Other report kinds (e.g. "Crystal") carry their own tags.
const EntryTypeWebi = "Webi"

// FolderEntry is one item of a folder listing.
type FolderEntry struct {
	ID   string `json:"id"`
	CUID string `json:"cuid"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type childrenResponse struct {
	Entries []FolderEntry `json:"entries"`
}

// Children lists the direct children of an infostore folder. The listing
// is flat; sub-folders appear as entries but are not descended into.
func (c *Client) Children(ctx context.Context, token, folderID string) ([]FolderEntry, error) {
	url := fmt.Sprintf("%s/infostore/%s/children", c.baseURL, folderID)
	var resp childrenResponse
	if err := c.getJSON(ctx, token, url, &resp); err != nil {
		return nil, fmt.Errorf("listing children of folder %s: %w", folderID, err)
	}
	return resp.Entries, nil
}
