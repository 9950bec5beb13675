package testutil

import (
	"github.com/davidrico/checkout/internal/domain/product"
	"github.com/davidrico/checkout/internal/domain/transaction"
)

func NewTestProduct(id string, price int64) *product.Product {
	return &product.Product{
		ID:          id,
		Name:        "Demo Product",
		Description: "Example product for testing payment flow",
		Price:       price,
	}
}

func NewTestCustomer() transaction.CustomerInfo {
	return transaction.CustomerInfo{
		FullName: "Jane Roe",
		Phone:    "3001234567",
		Address:  "Calle 100 #11-20",
		City:     "Bogota",
	}
}

func NewTestTransaction(productID string, price, baseFee, deliveryFee int64) *transaction.Transaction {
	tx, err := transaction.New(productID, price, baseFee, deliveryFee, NewTestCustomer())
	if err != nil {
		panic(err)
	}
	return tx
}
