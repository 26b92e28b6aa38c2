package domain

const (
	CollectionUser = "system_auth_users"
)

const (
	CollectionCatalogBands = "catalog_bands"
)
const (
	CollectionCatalogAlbums = "catalog_albums"
)
const (
	CollectionCatalogMembers = "catalog_members"
)

// CatalogCollections 目录实体集合（索引维护时遍历）
var CatalogCollections = []string{
	CollectionCatalogBands,
	CollectionCatalogAlbums,
	CollectionCatalogMembers,
}
