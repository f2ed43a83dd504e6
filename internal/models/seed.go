package models

// DefaultCatalog returns the fixed seed set the store is loaded with at
// startup. Ids start at 1 and are contiguous; every restart resets the
// memory backend to exactly this list.
func DefaultCatalog() []Product {
	return []Product{
		{
			ID:          1,
			Name:        "Zapatillas Running Pro",
			Category:    CategoryCalzado,
			Price:       129.99,
			Description: "Zapatillas de alto rendimiento para corredores profesionales",
			Stock:       15,
			SKU:         "ZAP-RUN-001",
			Image:       "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=400",
		},
		{
			ID:          2,
			Name:        "Balón de Fútbol Oficial",
			Category:    CategoryEquipamiento,
			Price:       45.99,
			Description: "Balón oficial para partidos profesionales",
			Stock:       30,
			SKU:         "BAL-FUT-002",
			Image:       "https://images.unsplash.com/photo-1614632537423-1e6c2e7e0aab?w=400",
		},
		{
			ID:          3,
			Name:        "Camiseta Deportiva",
			Category:    CategoryRopa,
			Price:       35.99,
			Description: "Camiseta transpirable para entrenamiento intenso",
			Stock:       50,
			SKU:         "CAM-DEP-003",
			Image:       "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=400",
		},
		{
			ID:          4,
			Name:        "Botella de Agua",
			Category:    CategoryAccesorios,
			Price:       15.99,
			Description: "Botella térmica de 1L para mantenerte hidratado",
			Stock:       100,
			SKU:         "BOT-AGU-004",
			Image:       "https://images.unsplash.com/photo-1602143407151-7111542de6e8?w=400",
		},
		{
			ID:          5,
			Name:        "Raqueta de Tenis",
			Category:    CategoryEquipamiento,
			Price:       199.99,
			Description: "Raqueta profesional con fibra de carbono",
			Stock:       8,
			SKU:         "RAQ-TEN-005",
			Image:       "https://images.unsplash.com/photo-1617883861744-14159a0a0d85?w=400",
		},
	}
}
