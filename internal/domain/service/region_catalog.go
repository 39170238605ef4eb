package service

import (
	"fmt"

	"TravelSpot-App/internal/config"
	"TravelSpot-App/internal/domain/apperror"
)

// RegionCatalog は地域名と地域ドキュメントのパスの対応表
type RegionCatalog struct {
	names []string
	paths map[string]string
}

// NewRegionCatalog は設定の順序を保ったまま対応表を作成する
func NewRegionCatalog(files []config.RegionFile) *RegionCatalog {
	c := &RegionCatalog{paths: make(map[string]string, len(files))}
	for _, f := range files {
		if _, dup := c.paths[f.Name]; dup {
			continue
		}
		c.names = append(c.names, f.Name)
		c.paths[f.Name] = f.Path
	}
	return c
}

// Names は地域名を設定順に返す
func (c *RegionCatalog) Names() []string {
	return append([]string(nil), c.names...)
}

// PathOf は地域名からドキュメントのパスを返す
func (c *RegionCatalog) PathOf(name string) (string, error) {
	path, ok := c.paths[name]
	if !ok {
		return "", fmt.Errorf("%w: 未知の地域です: %s", apperror.ErrInvalidArgument, name)
	}
	return path, nil
}

// Resolve は対象地域を決める。空なら全地域
func (c *RegionCatalog) Resolve(region string) ([]string, error) {
	if region == "" {
		return c.Names(), nil
	}
	if _, err := c.PathOf(region); err != nil {
		return nil, err
	}
	return []string{region}, nil
}
