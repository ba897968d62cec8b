package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `rentledger is a single-project marketplace ledger for renting compute resources by the hour.

Core concepts:
- Project: the one marketplace record. create_project replaces it; close_project deactivates it.
- Resource: a listing (owner, resource_type, price_per_hour, available). Ids start at 1 and never repeat.
- Rent: marks an available resource unavailable and returns price_per_hour * hours. No payment is moved.

Workflow:
1) create_project to open the marketplace.
2) list_resource for each offering; keep the returned id.
3) rent_resource to reserve; release_resource to free it again.
4) view_project / view_resource to inspect state. Missing entries come back as "Not Found" records, not errors.

Errors carry a code: RESOURCE_NOT_FOUND, RESOURCE_UNAVAILABLE, ALREADY_CLOSED, OVERFLOW.

Docs:
- rentledger://guide
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "rentledger://guide",
		Name:        "guide",
		Title:       "rentledger guide",
		Description: "Operations, error codes and edge cases of the rental ledger.",
		Content: `# rentledger guide

## Operations

| Tool | Input | Output |
|------|-------|--------|
| ` + "`create_project`" + ` | title, description | project_id |
| ` + "`list_resource`" + ` | owner, resource_type, price_per_hour | resource_id |
| ` + "`rent_resource`" + ` | renter, resource_id, hours | total_cost |
| ` + "`release_resource`" + ` | resource_id | status |
| ` + "`close_project`" + ` | none | status |
| ` + "`view_project`" + ` | none | project |
| ` + "`view_resource`" + ` | resource_id | resource |

## Edge cases

- Only one project exists at a time. Creating a second project replaces the first; its resource tally starts at 0.
- Listing without a project counts the resource against a placeholder project (id 0, "Not Found").
- Listing is allowed on a closed project.
- Releasing an available resource is a no-op and succeeds.
- Renting checks existence, then availability, then cost overflow. A failed rent changes nothing.
- The renter is not recorded.

## Error codes

- ` + "`RESOURCE_NOT_FOUND`" + `: no resource with that id.
- ` + "`RESOURCE_UNAVAILABLE`" + `: the resource is already rented.
- ` + "`ALREADY_CLOSED`" + `: close_project on an inactive or missing project.
- ` + "`OVERFLOW`" + `: price_per_hour * hours exceeds 2^64-1.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
