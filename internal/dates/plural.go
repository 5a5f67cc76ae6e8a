package dates

// PluralRu picks the Russian plural form for n: ends in 1 but not 11 takes
// the singular form, ends in 2-4 but not 12-14 takes the few form, everything
// else the many form. Every day/week count the system prints goes through this.
func PluralRu(n int, one, few, many string) string {
	if n < 0 {
		n = -n
	}
	switch {
	case n%10 == 1 && n%100 != 11:
		return one
	case n%10 >= 2 && n%10 <= 4 && (n%100 < 10 || n%100 >= 20):
		return few
	default:
		return many
	}
}

// PluralDays returns the declined form of "день" for n.
func PluralDays(n int) string {
	return PluralRu(n, "день", "дня", "дней")
}

// PluralWeeks returns the declined form of "неделя" for n.
func PluralWeeks(n int) string {
	return PluralRu(n, "неделя", "недели", "недель")
}

// PluralMonths returns the declined form of "месяц" for n.
func PluralMonths(n int) string {
	return PluralRu(n, "месяц", "месяца", "месяцев")
}

// PluralYears returns the declined form of "год" for n.
func PluralYears(n int) string {
	return PluralRu(n, "год", "года", "лет")
}
