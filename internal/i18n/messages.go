package i18n

var messages = map[string]map[string]string{
	LocaleRU: {
		"shopping_list.header": "Что купить:",

		"error.bad_request":          "Некорректный запрос",
		"error.unauthorized":         "Требуется авторизация",
		"error.forbidden":            "Недостаточно прав",
		"error.not_found":            "Не найдено",
		"error.internal_error":       "Внутренняя ошибка сервера",
		"error.too_many_requests":    "Слишком много запросов, попробуйте позже",
		"error.invalid_id":           "Некорректный идентификатор",
		"error.user_id_invalid":      "Некорректный идентификатор пользователя",
		"error.user_id_type_invalid": "Неверный тип идентификатора пользователя",

		"error.token_invalid":       "Недействительный токен",
		"error.token_expired":       "Срок действия токена истёк",
		"error.token_revoked":       "Токен отозван, войдите снова",
		"error.auth_header_missing": "Не передан заголовок Authorization",
		"error.auth_header_invalid": "Некорректный заголовок Authorization",
		"error.jwt_secret_missing":  "Не настроен секрет для токенов",
		"error.invalid_credentials": "Неверный email или пароль",
		"error.invalid_email":       "Некорректный email",
		"error.invalid_username":    "Недопустимое имя пользователя",
		"error.user_disabled":       "Учётная запись заблокирована",
		"error.user_not_found":      "Пользователь не найден",
		"error.email_exists":        "Пользователь с таким email уже существует",
		"error.username_exists":     "Пользователь с таким именем уже существует",
		"error.password_incorrect":  "Неверный текущий пароль",
		"error.password_same":       "Новый пароль должен отличаться от текущего",
		"error.password_weak":       "Пароль слишком простой",
		"error.role_builtin":        "Встроенную роль нельзя удалить",
		"error.role_reserved":       "Имя роли зарезервировано",
		"error.authz_unavailable":   "Сервис прав доступа недоступен",

		"error.password_min_length":      "Пароль должен содержать не менее %d символов",
		"error.password_require_upper":   "Пароль должен содержать заглавную букву",
		"error.password_require_lower":   "Пароль должен содержать строчную букву",
		"error.password_require_number":  "Пароль должен содержать цифру",
		"error.password_require_special": "Пароль должен содержать специальный символ",
		"error.password_numeric":         "Пароль не может состоять только из цифр",
		"error.password_personal":        "Пароль слишком похож на имя пользователя или email",

		"error.subscribe_self":     "Нельзя подписаться на самого себя",
		"error.already_subscribed": "Вы уже подписаны на этого автора",
		"error.not_subscribed":     "Вы не подписаны на этого автора",

		"error.tag_not_found":        "Тег не найден",
		"error.tag_exists":           "Тег с таким названием, цветом или slug уже существует",
		"error.ingredient_not_found": "Ингредиент не найден",
		"error.ingredient_exists":    "Такой ингредиент уже существует",
		"error.invalid_unit":         "Недопустимая единица измерения",
		"error.import_file_required": "Не передан файл для импорта",
		"error.import_failed":        "Не удалось импортировать ингредиенты",

		"error.recipe_not_found":                "Рецепт не найден",
		"error.recipe_forbidden":                "Изменять рецепт может только автор",
		"error.recipe_ingredients_required":     "Нужен хотя бы один ингредиент",
		"error.recipe_duplicate_ingredient":     "Ингредиенты не должны повторяться",
		"error.recipe_amount_out_of_range":      "Количество ингредиента вне допустимого диапазона",
		"error.recipe_tags_required":            "Нужен хотя бы один тег",
		"error.recipe_duplicate_tag":            "Теги не должны повторяться",
		"error.recipe_cooking_time_out_of_range": "Время приготовления вне допустимого диапазона",
		"error.recipe_image_required":           "Нужно загрузить изображение",
		"error.recipe_image_invalid":            "Некорректное изображение",
		"error.recipe_name_invalid":             "Название рецепта пустое или слишком длинное",
		"error.recipe_text_required":            "Нужно описание рецепта",

		"error.already_in_favorites": "Рецепт уже в избранном",
		"error.not_in_favorites":     "Рецепта нет в избранном",
		"error.already_in_cart":      "Рецепт уже в списке покупок",
		"error.not_in_cart":          "Рецепта нет в списке покупок",

		"error.export_format_unsupported": "Неподдерживаемый формат выгрузки",
		"error.export_failed":             "Не удалось сформировать список покупок",

		"error.ingredient_in_use":        "Ингредиент используется в рецептах",
		"error.rate_limited":             "Слишком много попыток, повторите через %d с",
		"error.rate_limit_unavailable":   "Сервис ограничения запросов недоступен",
		"error.staff_self_demote":        "Нельзя снять права администратора с самого себя",
		"error.subscription_not_allowed": "Подписка недоступна",
	},
	LocaleEN: {
		"shopping_list.header": "Shopping list:",

		"error.bad_request":          "Bad request",
		"error.unauthorized":         "Authentication required",
		"error.forbidden":            "Permission denied",
		"error.not_found":            "Not found",
		"error.internal_error":       "Internal server error",
		"error.too_many_requests":    "Too many requests, try again later",
		"error.invalid_id":           "Invalid id",
		"error.user_id_invalid":      "Invalid user id",
		"error.user_id_type_invalid": "Invalid user id type",

		"error.token_invalid":       "Invalid token",
		"error.token_expired":       "Token expired",
		"error.token_revoked":       "Token revoked, please sign in again",
		"error.auth_header_missing": "Authorization header is missing",
		"error.auth_header_invalid": "Authorization header is malformed",
		"error.jwt_secret_missing":  "Token secret is not configured",
		"error.invalid_credentials": "Invalid email or password",
		"error.invalid_email":       "Invalid email",
		"error.invalid_username":    "Invalid username",
		"error.user_disabled":       "Account is disabled",
		"error.user_not_found":      "User not found",
		"error.email_exists":        "A user with this email already exists",
		"error.username_exists":     "A user with this username already exists",
		"error.password_incorrect":  "Current password is incorrect",
		"error.password_same":       "New password must differ from the current one",
		"error.password_weak":       "Password is too weak",
		"error.role_builtin":        "Builtin role cannot be deleted",
		"error.role_reserved":       "Role name is reserved",
		"error.authz_unavailable":   "Authorization service unavailable",

		"error.password_min_length":      "Password must be at least %d characters",
		"error.password_require_upper":   "Password must contain an uppercase letter",
		"error.password_require_lower":   "Password must contain a lowercase letter",
		"error.password_require_number":  "Password must contain a digit",
		"error.password_require_special": "Password must contain a special character",
		"error.password_numeric":         "Password cannot be entirely numeric",
		"error.password_personal":        "Password is too similar to the username or email",

		"error.subscribe_self":     "You cannot subscribe to yourself",
		"error.already_subscribed": "Already subscribed to this author",
		"error.not_subscribed":     "Not subscribed to this author",

		"error.tag_not_found":        "Tag not found",
		"error.tag_exists":           "A tag with this name, color or slug already exists",
		"error.ingredient_not_found": "Ingredient not found",
		"error.ingredient_exists":    "Ingredient already exists",
		"error.invalid_unit":         "Unsupported measurement unit",
		"error.import_file_required": "Import file is required",
		"error.import_failed":        "Ingredient import failed",

		"error.recipe_not_found":                "Recipe not found",
		"error.recipe_forbidden":                "Only the author can modify this recipe",
		"error.recipe_ingredients_required":     "At least one ingredient is required",
		"error.recipe_duplicate_ingredient":     "Ingredients must not repeat",
		"error.recipe_amount_out_of_range":      "Ingredient amount is out of range",
		"error.recipe_tags_required":            "At least one tag is required",
		"error.recipe_duplicate_tag":            "Tags must not repeat",
		"error.recipe_cooking_time_out_of_range": "Cooking time is out of range",
		"error.recipe_image_required":           "Image is required",
		"error.recipe_image_invalid":            "Invalid image",
		"error.recipe_name_invalid":             "Recipe name is empty or too long",
		"error.recipe_text_required":            "Recipe text is required",

		"error.already_in_favorites": "Recipe is already in favorites",
		"error.not_in_favorites":     "Recipe is not in favorites",
		"error.already_in_cart":      "Recipe is already in the shopping cart",
		"error.not_in_cart":          "Recipe is not in the shopping cart",

		"error.export_format_unsupported": "Unsupported export format",
		"error.export_failed":             "Failed to build the shopping list",

		"error.ingredient_in_use":        "Ingredient is used by recipes",
		"error.rate_limited":             "Too many attempts, retry in %d s",
		"error.rate_limit_unavailable":   "Rate limiter is unavailable",
		"error.staff_self_demote":        "You cannot revoke your own staff access",
		"error.subscription_not_allowed": "Subscription is not allowed",
	},
}
