package dto

// StockResponse stock total de un producto y su desglose por bodega.
type StockResponse struct {
	ProductID      string               `json:"product_id"`
	TotalAvailable int64                `json:"total_available"`
	Levels         []StockLevelResponse `json:"levels"`
}

// StockLevelResponse cantidad en una bodega.
type StockLevelResponse struct {
	StorageID string `json:"storage_id"`
	Quantity  int64  `json:"quantity"`
}
