package model

// 商品（注文明細から参照される側）
type Item struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	StockQuantity int64  `json:"stock_quantity"`
}
