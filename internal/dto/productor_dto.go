package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductorRequest struct {
	Rut         string  `json:"rut"          validate:"required,min=8,max=12"`
	RazonSocial string  `json:"razon_social" validate:"required,min=2,max=200"`
	Telefono    *string `json:"telefono"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Direccion   *string `json:"direccion"`
	BancoDatos  *string `json:"banco_datos"`
}

type ActualizarProductorRequest struct {
	RazonSocial *string `json:"razon_social" validate:"omitempty,min=2,max=200"`
	Telefono    *string `json:"telefono"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Direccion   *string `json:"direccion"`
	BancoDatos  *string `json:"banco_datos"`
}
