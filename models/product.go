package models

import "time"

type SizeChart struct {
	Size   string `json:"size"`
	Chest  string `json:"chest"`
	Length string `json:"length"`
}

type ProductDetails struct {
	Collection string `json:"collection,omitempty"`
	Fabric     string `json:"fabric,omitempty"`
	Style      string `json:"style,omitempty"`
	Gender     string `json:"gender,omitempty"`
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       float64         `json:"price"`
	Description string          `json:"description"`
	Features    []string        `json:"features"`
	Sizes       []string        `json:"sizes"`
	Images      []string        `json:"images"`
	MainImage   string          `json:"main_image,omitempty"`
	SizeChart   []SizeChart     `json:"size_chart,omitempty"`
	Details     *ProductDetails `json:"details,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
