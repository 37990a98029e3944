package entity

// Stock cantidad máxima comprable de un producto. Se consulta en cada operación, nunca se cachea.
type Stock struct {
	ProductID int64 `json:"id"`
	Amount    int   `json:"amount"`
}
