package service

import "github.com/Chris91ss/Proper-Trench-Coats-App/model"

// DTOs returned to the transport layer.

type ItemDTO struct {
	ID         int64      `json:"id"`
	Size       model.Size `json:"size"`
	Color      string     `json:"color"`
	Price      float64    `json:"price"`
	Quantity   int        `json:"quantity"`
	Photograph string     `json:"photograph"`
}

type BasketEntryDTO struct {
	Item     ItemDTO `json:"item"`
	Quantity int     `json:"quantity"`
}

func toItemDTO(it model.Item) ItemDTO {
	return ItemDTO{
		ID:         it.ID,
		Size:       it.Size,
		Color:      it.Color,
		Price:      it.Price,
		Quantity:   it.Quantity,
		Photograph: it.Photograph,
	}
}

func toBasketEntryDTO(en model.BasketEntry) BasketEntryDTO {
	return BasketEntryDTO{Item: toItemDTO(en.Item), Quantity: en.Quantity}
}
