package inventory

// ValidateSortBy 校验排序字段, 空值表示不排序
func ValidateSortBy(sortBy string) error {
	if sortBy == "" {
		return nil
	}

	if _, ok := sortComparators[sortBy]; !ok {
		return ErrInvalidSortBy
	}

	return nil
}

// ValidatePageSize 校验页大小, 必须为正整数
func ValidatePageSize(pageSize int) error {
	if pageSize <= 0 {
		return ErrInvalidPageSize
	}

	return nil
}
