package i18n

var messages = map[string]map[string]string{
	LocaleES: {
		"error.bad_request":              "Solicitud inválida",
		"error.id_invalid":               "Identificador inválido",
		"error.unauthorized":             "No autorizado",
		"error.not_found":                "No encontrado",
		"error.internal":                 "Error interno, intenta de nuevo",
		"error.jwt_secret_missing":       "Autenticación no configurada",
		"error.auth_header_missing":      "Falta el encabezado Authorization",
		"error.auth_header_invalid":      "Formato de Authorization inválido",
		"error.token_invalid":            "Token inválido o vencido",
		"error.rate_limited":             "Demasiados intentos, espera %d segundos",
		"error.rate_limit_unavailable":   "Servicio de límite no disponible",
		"error.store_not_found":          "Tienda no encontrada",
		"error.store_exists":             "Ya tienes una tienda creada",
		"error.slug_exists":              "Esa dirección ya está en uso",
		"error.slug_invalid":             "La dirección solo admite minúsculas, números y guiones",
		"error.name_required":            "El nombre es obligatorio",
		"error.price_invalid":            "El precio debe ser un monto mayor o igual a cero",
		"error.rate_invalid":             "La tasa debe ser un número mayor o igual a cero",
		"error.category_not_found":       "Categoría no encontrada",
		"error.category_in_use":          "La categoría todavía tiene productos",
		"error.product_not_found":        "Producto no encontrado",
		"error.product_not_available":    "Producto no disponible",
		"error.modifier_not_found":       "Extra no encontrado",
		"error.modifier_not_allowed":     "Extra no permitido para este producto",
		"error.line_not_found":           "El producto ya no está en el carrito",
		"error.session_required":         "Falta la sesión del carrito",
		"error.session_conflict":         "El carrito cambió, intenta de nuevo",
		"error.quantity_invalid":         "La cantidad debe ser mayor que cero",
		"error.quantity_too_large":       "Cantidad máxima superada",
		"error.cart_full":                "El carrito tiene demasiados productos",
		"error.cart_empty":               "El carrito está vacío",
		"error.fulfillment_mode_invalid": "Modo de entrega inválido",
		"error.destination_required":     "Indica la zona de entrega",
		"error.destination_not_allowed":  "No hacemos delivery a esa zona",
		"error.contact_not_configured":   "La tienda no tiene número de WhatsApp configurado",
		"error.dispatch_failed":          "No se pudo enviar el pedido",
		"error.store_fetch_failed":       "No se pudo cargar la tienda",
		"error.cart_fetch_failed":        "No se pudo cargar el carrito",
		"error.cart_update_failed":       "No se pudo actualizar el carrito",
		"error.checkout_failed":          "No se pudo preparar el pedido",
		"error.store_save_failed":        "No se pudo guardar la tienda",
		"error.menu_save_failed":         "No se pudo guardar el menú",
	},
	LocaleEN: {
		"error.bad_request":              "Invalid request",
		"error.id_invalid":               "Invalid id",
		"error.unauthorized":             "Unauthorized",
		"error.not_found":                "Not found",
		"error.internal":                 "Internal error, please retry",
		"error.jwt_secret_missing":       "Authentication is not configured",
		"error.auth_header_missing":      "Missing Authorization header",
		"error.auth_header_invalid":      "Invalid Authorization header",
		"error.token_invalid":            "Invalid or expired token",
		"error.rate_limited":             "Too many attempts, retry in %d seconds",
		"error.rate_limit_unavailable":   "Rate limiter unavailable",
		"error.store_not_found":          "Store not found",
		"error.store_exists":             "You already have a store",
		"error.slug_exists":              "That address is already taken",
		"error.slug_invalid":             "The address only accepts lowercase letters, digits and dashes",
		"error.name_required":            "Name is required",
		"error.price_invalid":            "Price must be a non-negative amount",
		"error.rate_invalid":             "Rate must be a non-negative number",
		"error.category_not_found":       "Category not found",
		"error.category_in_use":          "Category still has products",
		"error.product_not_found":        "Product not found",
		"error.product_not_available":    "Product not available",
		"error.modifier_not_found":       "Extra not found",
		"error.modifier_not_allowed":     "Extra not allowed for this product",
		"error.line_not_found":           "Item is no longer in the cart",
		"error.session_required":         "Missing cart session",
		"error.session_conflict":         "The cart changed, please retry",
		"error.quantity_invalid":         "Quantity must be greater than zero",
		"error.quantity_too_large":       "Quantity limit exceeded",
		"error.cart_full":                "The cart has too many items",
		"error.cart_empty":               "The cart is empty",
		"error.fulfillment_mode_invalid": "Invalid fulfillment mode",
		"error.destination_required":     "Delivery zone is required",
		"error.destination_not_allowed":  "We do not deliver to that zone",
		"error.contact_not_configured":   "The store has no WhatsApp number configured",
		"error.dispatch_failed":          "The order could not be sent",
		"error.store_fetch_failed":       "Could not load the store",
		"error.cart_fetch_failed":        "Could not load the cart",
		"error.cart_update_failed":       "Could not update the cart",
		"error.checkout_failed":          "Could not prepare the order",
		"error.store_save_failed":        "Could not save the store",
		"error.menu_save_failed":         "Could not save the menu",
	},
}
