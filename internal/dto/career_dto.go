package dto

import "gorm.io/datatypes"

type CreatePortfolioRequest struct {
	UserID   int            `json:"userId"`
	Domain   string         `json:"domain"`
	Bio      string         `json:"bio"`
	Projects datatypes.JSON `json:"projects"`
	Theme    string         `json:"theme"`
	IsPublic bool           `json:"isPublic"`
}

type CreateApplicationRequest struct {
	UserID  int    `json:"userId"`
	Role    string `json:"role"`
	Company string `json:"company"`
	Status  string `json:"status"`
	Notes   string `json:"notes"`
}
