package arkhamdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-cleanhttp"
	retryablehttp "github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

// BaseURL is the root of the upstream catalog, also used to resolve
// relative card image paths.
const BaseURL = "https://arkhamdb.com"

const (
	packsURL = BaseURL + "/api/public/packs/"
	cardsURL = BaseURL + "/api/public/cards/"
)

type Client struct {
	client *retryablehttp.Client
}

func NewClient() *Client {
	ahdb := Client{}
	ahdb.client = retryablehttp.NewClient()
	ahdb.client.Logger = nil
	ahdb.client.HTTPClient.Transport = &limiterTransport{
		Parent: cleanhttp.DefaultTransport(),

		// Keep well below anything the upstream may consider abusive
		Limiter: rate.NewLimiter(4, 2),
	}
	return &ahdb
}

type limiterTransport struct {
	Parent  http.RoundTripper
	Limiter *rate.Limiter
}

func (t *limiterTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	err := t.Limiter.Wait(context.Background())
	if err != nil {
		return nil, err
	}
	return t.Parent.RoundTrip(req)
}

func (ahdb *Client) get(url string, out interface{}) error {
	resp, err := ahdb.client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s from %s", resp.Status, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, out)
}

// GetPacks retrieves every released pack.
func (ahdb *Client) GetPacks() ([]Pack, error) {
	var packs []Pack
	err := ahdb.get(packsURL, &packs)
	if err != nil {
		return nil, err
	}
	return packs, nil
}

// GetCards retrieves every player card across all packs.
func (ahdb *Client) GetCards() ([]Card, error) {
	var cards []Card
	err := ahdb.get(cardsURL, &cards)
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// GetCardsForPack retrieves the cards belonging to a single pack.
func (ahdb *Client) GetCardsForPack(packCode string) ([]Card, error) {
	var cards []Card
	err := ahdb.get(cardsURL+packCode, &cards)
	if err != nil {
		return nil, err
	}
	return cards, nil
}
