// Package client es un cliente tipado de la API de mascotas.
package client

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"secure-petstore/internal/platform/httpclient"
)

const apiPrefix = "/api/v1"

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type Pet struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Species     string     `json:"species"`
	Age         int        `json:"age"`
	Breed       *string    `json:"breed"`
	Description *string    `json:"description"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type NewPet struct {
	Name        string `json:"name"`
	Species     string `json:"species"`
	Age         int    `json:"age"`
	Breed       string `json:"breed,omitempty"`
	Description string `json:"description,omitempty"`
}

// PetChanges solo envía los campos no-nil.
type PetChanges struct {
	Name        *string `json:"name,omitempty"`
	Species     *string `json:"species,omitempty"`
	Age         *int    `json:"age,omitempty"`
	Breed       *string `json:"breed,omitempty"`
	Description *string `json:"description,omitempty"`
}

type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type envelope[T any] struct {
	Status  string `json:"status"`
	Results int    `json:"results"`
	Data    T      `json:"data"`
}

type Client struct {
	http *httpclient.Client

	mu    sync.RWMutex
	token string
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

// SetToken fija el bearer que se manda en cada request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	headers := map[string]string{}
	if tok := c.Token(); tok != "" {
		headers["Authorization"] = "Bearer " + tok
	}
	return c.http.DoJSON(ctx, method, apiPrefix+path, headers, in, out)
}

// Register crea la cuenta y deja el token de la sesión en el cliente.
func (c *Client) Register(ctx context.Context, username, email, password string) (Session, error) {
	var env envelope[Session]
	in := map[string]string{"username": username, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/register", in, &env); err != nil {
		return Session{}, err
	}
	c.SetToken(env.Data.Token)
	return env.Data, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var env envelope[Session]
	in := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", in, &env); err != nil {
		return Session{}, err
	}
	c.SetToken(env.Data.Token)
	return env.Data, nil
}

func (c *Client) Me(ctx context.Context) (User, error) {
	var env envelope[struct {
		User User `json:"user"`
	}]
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &env); err != nil {
		return User{}, err
	}
	return env.Data.User, nil
}

// Logout revoca el token en el server (si lo soporta) y lo olvida localmente.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

func (c *Client) ListPets(ctx context.Context) ([]Pet, error) {
	var env envelope[struct {
		Pets []Pet `json:"pets"`
	}]
	if err := c.do(ctx, http.MethodGet, "/pets", nil, &env); err != nil {
		return nil, err
	}
	return env.Data.Pets, nil
}

func (c *Client) GetPet(ctx context.Context, id string) (Pet, error) {
	return c.pet(ctx, http.MethodGet, "/pets/"+url.PathEscape(id), nil)
}

func (c *Client) CreatePet(ctx context.Context, in NewPet) (Pet, error) {
	return c.pet(ctx, http.MethodPost, "/pets", in)
}

func (c *Client) UpdatePet(ctx context.Context, id string, in PetChanges) (Pet, error) {
	return c.pet(ctx, http.MethodPut, "/pets/"+url.PathEscape(id), in)
}

func (c *Client) DeletePet(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/pets/"+url.PathEscape(id), nil, nil)
}

func (c *Client) pet(ctx context.Context, method, path string, in any) (Pet, error) {
	var env envelope[struct {
		Pet Pet `json:"pet"`
	}]
	if err := c.do(ctx, method, path, in, &env); err != nil {
		return Pet{}, err
	}
	return env.Data.Pet, nil
}
