package fixtures

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

var ErrUnexpectedStatus = errors.New("unexpected status")

type Loader struct {
	BaseURL string
	Client  *http.Client
	Log     *zap.Logger
}

func NewLoader(baseURL string, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 5 * time.Second},
		Log:     log,
	}
}

type listed struct {
	ID int64 `json:"id"`
}

// Reset deletes every product the service lists and reports how many went.
func (l *Loader) Reset(ctx context.Context) (int, error) {
	var products []listed
	if err := l.do(ctx, http.MethodGet, "/products", nil, http.StatusOK, &products); err != nil {
		return 0, fmt.Errorf("list products: %w", err)
	}

	for _, p := range products {
		path := "/products/" + strconv.FormatInt(p.ID, 10)
		if err := l.do(ctx, http.MethodDelete, path, nil, http.StatusNoContent, nil); err != nil {
			return 0, fmt.Errorf("delete product %d: %w", p.ID, err)
		}
	}

	l.Log.Info("fixtures reset", zap.Int("deleted", len(products)))
	return len(products), nil
}

// Load resets the service and creates rows in order, returning the new ids.
func (l *Loader) Load(ctx context.Context, rows []Row) ([]int64, error) {
	if _, err := l.Reset(ctx); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		payload, err := row.Payload()
		if err != nil {
			return ids, err
		}

		var created listed
		if err := l.do(ctx, http.MethodPost, "/products", payload, http.StatusCreated, &created); err != nil {
			return ids, fmt.Errorf("create product %q: %w", row.Name, err)
		}
		ids = append(ids, created.ID)
	}

	l.Log.Info("fixtures loaded", zap.Int("created", len(ids)))
	return ids, nil
}

func (l *Loader) do(ctx context.Context, method, path string, body any, want int, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, l.BaseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := l.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s %s status=%d want=%d body=%s",
			ErrUnexpectedStatus, method, path, resp.StatusCode, want, bytes.TrimSpace(msg))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
