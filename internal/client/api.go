package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Shjra/Shjra-Maps/internal/models"
)

// API est le client HTTP du storefront. Le header Authorization n'est envoyé
// que lorsqu'un token est détenu.
type API struct {
	baseURL string
	client  *http.Client
	state   *State
}

func NewAPI(baseURL string, state *State) *API {
	return &API{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		state:   state,
	}
}

// FilterState est l'état de filtre composé côté client. Les prix restent des
// chaînes libres : c'est le serveur qui parse avec un fallback sûr.
type FilterState struct {
	Query        string
	Type         string
	Badge        string
	MinPrice     string
	MaxPrice     string
	DiscountOnly bool
	Sort         string
}

func (f FilterState) queryParams(page int) url.Values {
	params := url.Values{}
	if f.Query != "" {
		params.Set("q", f.Query)
	}
	if f.Type != "" {
		params.Set("type", f.Type)
	}
	if f.Badge != "" {
		params.Set("badge", f.Badge)
	}
	if f.MinPrice != "" {
		params.Set("minPrice", f.MinPrice)
	}
	if f.MaxPrice != "" {
		params.Set("maxPrice", f.MaxPrice)
	}
	if f.DiscountOnly {
		params.Set("discountOnly", "true")
	}
	if f.Sort != "" {
		params.Set("sort", f.Sort)
	}
	params.Set("page", strconv.Itoa(page))
	return params
}

type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

type SearchResult struct {
	Products   []models.Product `json:"products"`
	Pagination Pagination       `json:"pagination"`
}

// VerifySession vérifie le credential courant via /api/user. En cas d'échec
// l'état local est nettoyé et l'UI repasse en mode déconnecté.
func (a *API) VerifySession(ctx context.Context) (models.User, bool) {
	var body struct {
		Success bool         `json:"success"`
		User    *models.User `json:"user"`
	}

	if err := a.getJSON(ctx, "/api/user", nil, &body); err != nil || !body.Success || body.User == nil {
		a.state.ClearSession()
		return models.User{}, false
	}

	a.state.SetSession(*body.User, a.state.Token())
	return *body.User, true
}

// FetchProducts charge le catalogue complet
func (a *API) FetchProducts(ctx context.Context) ([]models.Product, error) {
	var body struct {
		Success  bool             `json:"success"`
		Products []models.Product `json:"products"`
		Error    string           `json:"error"`
	}

	if err := a.getJSON(ctx, "/api/products", nil, &body); err != nil {
		return nil, err
	}
	if !body.Success {
		return nil, fmt.Errorf("chargement produits: %s", body.Error)
	}
	return body.Products, nil
}

// Search exécute une recherche avec l'état de filtre courant
func (a *API) Search(ctx context.Context, filters FilterState, page int) (SearchResult, error) {
	var body struct {
		Success    bool             `json:"success"`
		Products   []models.Product `json:"products"`
		Pagination Pagination       `json:"pagination"`
		Error      string           `json:"error"`
	}

	if err := a.getJSON(ctx, "/api/products/search", filters.queryParams(page), &body); err != nil {
		return SearchResult{}, err
	}
	if !body.Success {
		return SearchResult{}, fmt.Errorf("recherche: %s", body.Error)
	}

	// résultat vide explicite, jamais nil : l'UI rend son état vide
	if body.Products == nil {
		body.Products = []models.Product{}
	}
	return SearchResult{Products: body.Products, Pagination: body.Pagination}, nil
}

// CreateProduct ajoute un produit (admin)
func (a *API) CreateProduct(ctx context.Context, input models.ProductInput) (models.Product, error) {
	return a.mutateProduct(ctx, http.MethodPost, "/api/products", input)
}

// UpdateProduct modifie partiellement un produit (admin)
func (a *API) UpdateProduct(ctx context.Context, id int64, update models.ProductUpdate) (models.Product, error) {
	return a.mutateProduct(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d", id), update)
}

// DeleteProduct supprime un produit (admin)
func (a *API) DeleteProduct(ctx context.Context, id int64) error {
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}

	if err := a.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil, &body); err != nil {
		return err
	}
	if !body.Success {
		return fmt.Errorf("suppression produit: %s", body.Error)
	}
	return nil
}

func (a *API) mutateProduct(ctx context.Context, method, path string, payload interface{}) (models.Product, error) {
	var body struct {
		Success bool           `json:"success"`
		Product models.Product `json:"product"`
		Error   string         `json:"error"`
	}

	if err := a.doJSON(ctx, method, path, payload, &body); err != nil {
		return models.Product{}, err
	}
	if !body.Success {
		return models.Product{}, fmt.Errorf("mutation produit: %s", body.Error)
	}
	return body.Product, nil
}

func (a *API) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	target := a.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	return a.send(req, out)
}

func (a *API) doJSON(ctx context.Context, method, path string, payload, out interface{}) error {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return a.send(req, out)
}

func (a *API) send(req *http.Request, out interface{}) error {
	if token := a.state.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}
