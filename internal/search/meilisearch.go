package search

import (
	"encoding/json"
	"strconv"

	"github.com/meilisearch/meilisearch-go"

	"property-catalog/internal/models"
)

type SearchClient struct {
	client *meilisearch.Client
	index  string
}

func NewSearchClient(host, apiKey string) *SearchClient {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})

	return &SearchClient{
		client: client,
		index:  "properties",
	}
}

// InitIndex initializes the Meilisearch index
func (s *SearchClient) InitIndex() error {
	// Create index if it doesn't exist
	_, err := s.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        s.index,
		PrimaryKey: "id",
	})
	// Ignore error if index already exists
	if err != nil && err.Error() != "index already exists" {
		return err
	}

	// Configure searchable attributes
	_, err = s.client.Index(s.index).UpdateSearchableAttributes(&[]string{
		"address",
		"description",
		"owner_name",
	})
	if err != nil {
		return err
	}

	// Configure sortable attributes
	_, err = s.client.Index(s.index).UpdateSortableAttributes(&[]string{
		"price",
		"size",
	})
	if err != nil {
		return err
	}

	return nil
}

// IndexProperty indexes a single property
func (s *SearchClient) IndexProperty(property *models.Property) error {
	_, err := s.client.Index(s.index).AddDocuments([]models.Property{*property})
	return err
}

// RemoveProperty removes a property from the index
func (s *SearchClient) RemoveProperty(id int64) error {
	_, err := s.client.Index(s.index).DeleteDocument(strconv.FormatInt(id, 10))
	return err
}

// SearchByAddress searches the index for properties matching the query text.
func (s *SearchClient) SearchByAddress(query string, limit int64) ([]models.Property, error) {
	if limit == 0 {
		limit = 100
	}

	searchRes, err := s.client.Index(s.index).Search(query, &meilisearch.SearchRequest{
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	// Convert hits to properties
	var properties []models.Property
	for _, hit := range searchRes.Hits {
		// Convert hit to JSON then to Property struct
		hitJSON, err := json.Marshal(hit)
		if err != nil {
			continue
		}

		var property models.Property
		if err := json.Unmarshal(hitJSON, &property); err != nil {
			continue
		}

		properties = append(properties, property)
	}

	return properties, nil
}
