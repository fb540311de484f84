package postgres

// SQL for the forecast board. Dates travel as YYYY-MM-DD text so no session
// time zone can shift a calendar day.

const (
	// queryListCities joins each city to its IANA zone name.
	queryListCities = `
		SELECT c.id, c.name, tz.name
		FROM cities c
		JOIN timezones tz ON tz.id = c.timezone_id
		ORDER BY c.name ASC, c.id ASC
	`

	queryListRecentSubmissions = `
		SELECT city_id, date::text, high, low
		FROM daily_forecasts
		WHERE user_id = $1
		  AND date = ANY($2::date[])
		ORDER BY date ASC, city_id ASC
	`

	queryListPriorActuals = `
		SELECT city_id, date::text, hour, temp::text
		FROM hourly_actuals
		WHERE date = $1
		ORDER BY city_id ASC, hour ASC
	`

	// queryUpsertSubmission merges into the existing row; an absent temperature
	// keeps what was stored before.
	queryUpsertSubmission = `
		INSERT INTO daily_forecasts (user_id, city_id, date, high, low, updated_at)
		VALUES ($1, $2, $3::date, $4, $5, NOW())
		ON CONFLICT (user_id, city_id, date)
		DO UPDATE SET
			high       = COALESCE(EXCLUDED.high, daily_forecasts.high),
			low        = COALESCE(EXCLUDED.low, daily_forecasts.low),
			updated_at = EXCLUDED.updated_at
	`

	queryValidateSchema = `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_name = 'daily_forecasts'
		)
	`
)
