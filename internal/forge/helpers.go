package forge

import (
	"context"
	"fmt"
	"strings"
)

// PaginatedFetchHelper performs paginated API requests.
//
// fetchPage receives the full endpoint for one page and returns its items and
// whether the API reported a further page. Fetching stops at the first short
// or last page.
func PaginatedFetchHelper[T any](
	ctx context.Context,
	baseEndpoint string,
	pageSize int,
	fetchPage func(endpoint string) ([]T, bool, error),
) ([]T, error) {
	var allResults []T

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sep := "?"
		if strings.Contains(baseEndpoint, "?") {
			sep = "&"
		}
		endpoint := fmt.Sprintf("%s%sper_page=%d&page=%d", baseEndpoint, sep, pageSize, page)

		pageResults, hasMore, err := fetchPage(endpoint)
		if err != nil {
			return nil, err
		}
		allResults = append(allResults, pageResults...)

		if !hasMore || len(pageResults) < pageSize {
			return allResults, nil
		}
	}
}

// hasNextPage reports whether a GitHub Link header advertises rel="next".
func hasNextPage(link string) bool {
	for _, part := range strings.Split(link, ",") {
		if strings.Contains(part, `rel="next"`) {
			return true
		}
	}
	return false
}
