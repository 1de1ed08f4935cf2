package catalog

const (
	LogMsgCatalogCacheMiss = "Item catalog cache miss"
)
