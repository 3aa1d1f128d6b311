package dto

// CreateCategoryRequest entrada para agregar una categoría.
type CreateCategoryRequest struct {
	Name string `json:"name" form:"name" validate:"required"`
}

// UpdateCategoryRequest entrada para renombrar una categoría.
type UpdateCategoryRequest struct {
	Name string `json:"name" form:"name" validate:"required"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	SubCategories int    `json:"sub_categories"`
	Products      int    `json:"products"`
	Variants      int    `json:"variants"`
}

// TotalsResponse conteos derivados del catálogo.
type TotalsResponse struct {
	Categories    int `json:"categories"`
	SubCategories int `json:"sub_categories"`
	Products      int `json:"products"`
	Variants      int `json:"variants"`
}

// CategoryListResponse listado completo en orden de despliegue.
type CategoryListResponse struct {
	Items  []CategoryResponse `json:"items"`
	Totals TotalsResponse     `json:"totals"`
}

// CategoryMutationResponse resultado de add/update/delete: el feedback y la categoría afectada.
type CategoryMutationResponse struct {
	Feedback FeedbackResponse  `json:"feedback"`
	Category *CategoryResponse `json:"category,omitempty"`
}
