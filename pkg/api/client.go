// Package api wraps every call to the remote product-management API. One
// client-wide policy attaches the stored token to outgoing requests and
// reacts to authorization failures; the domain operations are thin
// pass-throughs over it.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jmoreira/produtos-cli/pkg/logger"
	"github.com/jmoreira/produtos-cli/pkg/produto"
	"github.com/jmoreira/produtos-cli/pkg/token"
)

type Client struct {
	http  *resty.Client
	store token.Store
}

type Option func(*Client)

// WithTimeout overrides the transport timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithHTTPClient swaps the underlying http.Client. Tests only.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = resty.NewWithClient(hc).SetBaseURL(c.http.BaseURL)
	}
}

func New(baseURL string, store token.Store, opts ...Option) *Client {
	c := &Client{
		http:  resty.New().SetBaseURL(baseURL),
		store: store,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http.SetHeader("Content-Type", "application/json")

	// Attach the current token, when there is one. An absent token sends
	// the request bare; rejecting it is the server's concern.
	c.http.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		creds, ok, err := store.Get(req.Context())
		if err != nil {
			logger.Log(req.Context()).Errorf("api: failed reading token store: %v", err)
			return nil
		}
		if ok {
			req.SetHeader("Authorization", "Bearer "+creds.Token)
		}
		return nil
	})

	// Single global policy: any 401 clears the session and surfaces
	// ErrSessionExpired to the caller. Runs once per response.
	c.http.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		if resp.StatusCode() != http.StatusUnauthorized {
			return nil
		}
		ctx := resp.Request.Context()
		if err := store.Clear(ctx); err != nil {
			logger.Log(ctx).Errorf("api: failed clearing token store after 401: %v", err)
		}
		return ErrSessionExpired
	})

	return c
}

type credentials struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
}

type loginResponse struct {
	Token      string    `json:"token"`
	Expiration time.Time `json:"expiration"`
}

// Login authenticates and, on success, persists the credential in the
// token store before returning it.
func (c *Client) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	out := new(loginResponse)
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(credentials{Email: email, Password: password}).
		SetResult(out).
		Post("/Usuario/LogarUsuario")
	if err := c.check(resp, err); err != nil {
		return ``, time.Time{}, err
	}
	if out.Token == `` {
		return ``, time.Time{}, errors.New("api: login response has no token")
	}

	if err := c.store.Set(ctx, out.Token, out.Expiration); err != nil {
		return ``, time.Time{}, fmt.Errorf("api: failed persisting session, %w", err)
	}
	return out.Token, out.Expiration, nil
}

func (c *Client) Register(ctx context.Context, email, password, confirmPassword string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(credentials{Email: email, Password: password, ConfirmPassword: confirmPassword}).
		Post("/Usuario/CriarUsuario")
	return c.check(resp, err)
}

// Logout drops the local session. The API keeps no server-side session to
// terminate, so no request goes out.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("api: failed clearing session, %w", err)
	}
	return nil
}

func (c *Client) ListProdutos(ctx context.Context) ([]produto.Produto, error) {
	var out []produto.Produto
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/Produtos")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduto(ctx context.Context, id int64) (produto.Produto, error) {
	out := new(produto.Produto)
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(out).
		Get(fmt.Sprintf("/Produtos/%d", id))
	if err := c.check(resp, err); err != nil {
		return produto.Produto{}, err
	}
	return *out, nil
}

func (c *Client) SearchProdutosPorNome(ctx context.Context, nome string) ([]produto.Produto, error) {
	var out []produto.Produto
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("nome", nome).
		SetResult(&out).
		Get("/Produtos/ProdutosPorNome")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProduto validates client-side first; invalid input never reaches
// the network.
func (c *Client) CreateProduto(ctx context.Context, in produto.Input) (produto.Produto, error) {
	payload, errs := in.Validate()
	if errs != nil {
		return produto.Produto{}, errs
	}

	out := new(produto.Produto)
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(out).
		Post("/Produtos")
	if err := c.check(resp, err); err != nil {
		return produto.Produto{}, err
	}
	return *out, nil
}

// UpdateProduto validates like CreateProduto; the request body carries the
// id alongside the fields, as the API expects.
func (c *Client) UpdateProduto(ctx context.Context, id int64, in produto.Input) (produto.Produto, error) {
	payload, errs := in.Validate()
	if errs != nil {
		return produto.Produto{}, errs
	}
	payload.ID = id

	out := new(produto.Produto)
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(out).
		Put(fmt.Sprintf("/Produtos/%d", id))
	if err := c.check(resp, err); err != nil {
		return produto.Produto{}, err
	}
	if out.ID == 0 {
		// Some deployments answer an update with a bare status.
		return payload, nil
	}
	return *out, nil
}

func (c *Client) DeleteProduto(ctx context.Context, id int64) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/Produtos/%d", id))
	return c.check(resp, err)
}

// check maps a response to the error taxonomy. The 401 policy already ran
// in the response hook; everything else is classified here.
func (c *Client) check(resp *resty.Response, err error) error {
	if err != nil {
		if errors.Is(err, ErrSessionExpired) {
			return err
		}
		return &TransportError{Err: err}
	}

	switch {
	case resp.IsSuccess():
		return nil
	case resp.StatusCode() == http.StatusBadRequest:
		return parseValidationError(resp.Body())
	case resp.StatusCode() == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode() >= http.StatusInternalServerError:
		return &ServerError{Status: resp.StatusCode()}
	default:
		return fmt.Errorf("api: unexpected status %d", resp.StatusCode())
	}
}
