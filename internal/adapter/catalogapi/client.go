package catalogapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Renatopaccha/Dental-Gest/internal/core/domain"
	"github.com/Renatopaccha/Dental-Gest/internal/core/port"
	"github.com/Renatopaccha/Dental-Gest/pkg/retry"
)

var _ port.CatalogProvider = Client{}

var (
	errServerStatus = errors.New("server error status")
	errClientStatus = errors.New("client error status")
)

const (
	requestTimeout = 10 * time.Second
	maxAttempts    = 3
	retryDelay     = 100 * time.Millisecond
)

// Client consumes the catalog backend's REST API. It returns errors;
// the service layer decides how to degrade them.
type Client struct {
	baseURL string
	httpCl  *http.Client
	policy  retry.Policy
}

func New(baseURL string) Client {
	return Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCl:  &http.Client{Timeout: requestTimeout},
		policy: retry.Policy{
			MaxAttempts: maxAttempts,
			Backoff:     retry.Exponential(retryDelay),
			Retryable:   isTransient,
		},
	}
}

func (c Client) FetchProducts(
	ctx context.Context, sel domain.FilterSelection,
) ([]domain.ProductDisplay, error) {
	const op = "CatalogClient.FetchProducts"

	body, err := c.get(ctx, "/products/", sel.QueryValues())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	raw, err := decodeList[Product](body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ds := make([]domain.ProductDisplay, len(raw))
	for i := range raw {
		ds[i] = ToDisplay(raw[i])
	}
	return ds, nil
}

func (c Client) FetchProductByID(
	ctx context.Context, id int,
) (domain.ProductDisplay, error) {
	const op = "CatalogClient.FetchProductByID"

	body, err := c.get(ctx, fmt.Sprintf("/products/%d/", id), nil)
	if err != nil {
		return domain.ProductDisplay{}, fmt.Errorf("%s: %w", op, err)
	}

	var raw Product
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.ProductDisplay{}, fmt.Errorf("%s: %w", op, err)
	}
	return ToDisplay(raw), nil
}

func (c Client) FetchCategories(
	ctx context.Context, audience string,
) ([]domain.Category, error) {
	const op = "CatalogClient.FetchCategories"

	body, err := c.get(ctx, "/categories/", audienceQuery(audience))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	raw, err := decodeList[Category](body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cs := make([]domain.Category, len(raw))
	for i := range raw {
		cs[i] = toDomainCategory(raw[i])
	}
	return cs, nil
}

func (c Client) FetchBrands(
	ctx context.Context, audience string,
) ([]domain.Brand, error) {
	const op = "CatalogClient.FetchBrands"

	body, err := c.get(ctx, "/brands/", audienceQuery(audience))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	raw, err := decodeList[Brand](body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bs := make([]domain.Brand, len(raw))
	for i := range raw {
		bs[i] = toDomainBrand(raw[i])
	}
	return bs, nil
}

func (c Client) get(
	ctx context.Context, path string, q url.Values,
) ([]byte, error) {
	u := c.baseURL + path
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}

	return retry.DoWithResult(ctx, c.policy, func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		// stock counts and prices change often: never serve stale data
		req.Header.Set("Cache-Control", "no-store")

		resp, err := c.httpCl.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return nil, domain.ErrNotFound
		case resp.StatusCode >= http.StatusInternalServerError:
			return nil, fmt.Errorf("%w: %d", errServerStatus, resp.StatusCode)
		case resp.StatusCode >= http.StatusBadRequest:
			return nil, fmt.Errorf("%w: %d", errClientStatus, resp.StatusCode)
		}

		return io.ReadAll(resp.Body)
	})
}

func audienceQuery(audience string) url.Values {
	if audience == "" {
		return nil
	}
	return url.Values{"audience": []string{audience}}
}

// isTransient keeps retries to transport faults and 5xx responses.
func isTransient(err error) bool {
	return !errors.Is(err, domain.ErrNotFound) &&
		!errors.Is(err, errClientStatus)
}
