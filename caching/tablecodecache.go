package caching

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

// TableCodeCache maps table join codes to table ids and back. Both
// directions are LRU bounded so long-running lobbies do not grow without
// limit.
type TableCodeCache struct {
	tableIDToCode *lru.Cache
	tableCodeToID *lru.Cache
}

func NewCache() (*TableCodeCache, error) {
	size := 100000
	tableIDToCode, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to initialize tableIDToCode cache")
	}
	tableCodeToID, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to initialize tableCodeToID cache")
	}
	return &TableCodeCache{
		tableIDToCode: tableIDToCode,
		tableCodeToID: tableCodeToID,
	}, nil
}

func (c *TableCodeCache) Add(tableID uint64, tableCode string) error {
	if tableID == 0 {
		return fmt.Errorf("Invalid table ID [%d]", tableID)
	} else if tableCode == "" {
		return fmt.Errorf("Invalid table code [%s]", tableCode)
	}

	c.tableIDToCode.Add(tableID, tableCode)
	c.tableCodeToID.Add(tableCode, tableID)
	return nil
}

func (c *TableCodeCache) TableIDToCode(tableID uint64) (string, bool) {
	v, exists := c.tableIDToCode.Get(tableID)
	if !exists {
		return "", false
	}
	return v.(string), true
}

func (c *TableCodeCache) TableCodeToID(tableCode string) (uint64, bool) {
	v, exists := c.tableCodeToID.Get(tableCode)
	if !exists {
		return 0, false
	}
	return v.(uint64), true
}
