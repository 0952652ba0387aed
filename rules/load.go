package rules

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads the tunable portions of Rules (everything except the
// season window, which is run-specific and always supplied by the
// caller) from environment variables, optionally overlaid on a .env
// file, following the same viper+godotenv layering noah-isme's
// pkg/config uses. Callers that already have a fully-formed Rules value
// (e.g. from a saved profile) can skip Load entirely.
func Load() (Rules, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// With SetConfigFile, a missing .env surfaces as a not-exist
		// error rather than ConfigFileNotFoundError.
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Rules{}, err
		}
	}

	r := Default()
	r.PlayOnSunday = v.GetBool("SCHED_PLAY_ON_SUNDAY")
	r.GameDurationMinutes = v.GetInt("SCHED_GAME_DURATION_MINUTES")

	r.WeeknightWindow = Window{
		Start: parseClock(v.GetString("SCHED_WEEKNIGHT_START"), r.WeeknightWindow.Start),
		End:   parseClock(v.GetString("SCHED_WEEKNIGHT_END"), r.WeeknightWindow.End),
	}
	r.SaturdayWindow = Window{
		Start: parseClock(v.GetString("SCHED_SATURDAY_START"), r.SaturdayWindow.Start),
		End:   parseClock(v.GetString("SCHED_SATURDAY_END"), r.SaturdayWindow.End),
	}

	r.TargetGamesPerTeam = v.GetInt("SCHED_TARGET_GAMES_PER_TEAM")
	r.MaxGamesPer7Days = v.GetInt("SCHED_MAX_GAMES_PER_7_DAYS")
	r.MaxGamesPer14Days = v.GetInt("SCHED_MAX_GAMES_PER_14_DAYS")
	r.MaxDoubleheadersPerSeason = v.GetInt("SCHED_MAX_DOUBLEHEADERS_PER_SEASON")
	r.DoubleheaderBreakMinutes = v.GetInt("SCHED_DOUBLEHEADER_BREAK_MINUTES")
	r.MaxRematches = v.GetInt("SCHED_MAX_REMATCHES")
	r.CPTimeBudgetSeconds = v.GetInt("SCHED_CP_TIME_BUDGET_SECONDS")
	r.GreedyMaxPasses = v.GetInt("SCHED_GREEDY_MAX_PASSES")

	r.PriorityWeights = parseWeights(v.GetString("SCHED_PRIORITY_WEIGHTS"))
	r.Holidays = parseHolidays(v.GetString("SCHED_HOLIDAYS"))

	return r, nil
}

func setDefaults(v *viper.Viper) {
	def := Default()

	v.SetDefault("SCHED_PLAY_ON_SUNDAY", false)
	v.SetDefault("SCHED_GAME_DURATION_MINUTES", def.GameDurationMinutes)
	v.SetDefault("SCHED_WEEKNIGHT_START", "18:00")
	v.SetDefault("SCHED_WEEKNIGHT_END", "21:00")
	v.SetDefault("SCHED_SATURDAY_START", "09:00")
	v.SetDefault("SCHED_SATURDAY_END", "17:00")
	v.SetDefault("SCHED_TARGET_GAMES_PER_TEAM", def.TargetGamesPerTeam)
	v.SetDefault("SCHED_MAX_GAMES_PER_7_DAYS", def.MaxGamesPer7Days)
	v.SetDefault("SCHED_MAX_GAMES_PER_14_DAYS", def.MaxGamesPer14Days)
	v.SetDefault("SCHED_MAX_DOUBLEHEADERS_PER_SEASON", def.MaxDoubleheadersPerSeason)
	v.SetDefault("SCHED_DOUBLEHEADER_BREAK_MINUTES", def.DoubleheaderBreakMinutes)
	v.SetDefault("SCHED_MAX_REMATCHES", def.MaxRematches)
	v.SetDefault("SCHED_CP_TIME_BUDGET_SECONDS", def.CPTimeBudgetSeconds)
	v.SetDefault("SCHED_GREEDY_MAX_PASSES", def.GreedyMaxPasses)
	v.SetDefault("SCHED_PRIORITY_WEIGHTS", "")
	v.SetDefault("SCHED_HOLIDAYS", "")
}

// parseClock parses "HH:MM" into a duration-since-midnight, falling back
// to fallback on any malformed value rather than failing the whole load.
func parseClock(raw string, fallback time.Duration) time.Duration {
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return fallback
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
}

// parseWeights parses a "key=value,key=value" list into a weights map,
// e.g. "S1_cluster_match=10,S3_rivals_played=3".
func parseWeights(raw string) map[string]int {
	weights := map[string]int{}
	if raw == "" {
		return weights
	}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(kv[1]))
		if err != nil {
			continue
		}
		weights[strings.TrimSpace(kv[0])] = n
	}
	return weights
}

// parseHolidays parses a comma-separated list of "2006-01-02" dates.
func parseHolidays(raw string) map[string]struct{} {
	holidays := map[string]struct{}{}
	if raw == "" {
		return holidays
	}
	for _, d := range strings.Split(raw, ",") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err == nil {
			holidays[d] = struct{}{}
		}
	}
	return holidays
}
