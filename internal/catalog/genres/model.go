package genres

// Genre は genres テーブルの1行（参照専用、外部で投入される）
type Genre struct {
	ID   uint8  `json:"id"`
	Name string `json:"name"`
}
