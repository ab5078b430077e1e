package dashboard

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/secrecy-farm-cli/internal/application"
	"github.com/bnema/secrecy-farm-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

type RenderOptions struct {
	Now time.Time
}

const privacyBarWidth = 24

func renderDashboard(dashboard application.Dashboard, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Secrecy Farm"),
		walletLine(dashboard, s),
		s.section.Render(renderPools(dashboard.Pools, s)),
		s.section.Render(renderPositions(dashboard, opts, s)),
		s.section.Render(renderMetrics(dashboard, s)),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func walletLine(dashboard application.Dashboard, s styles) string {
	if !dashboard.Connected {
		return s.warning.Render("wallet: not connected")
	}
	return s.header.Render("wallet: " + dashboard.Wallet.Hex())
}

func renderPools(pools []domain.Pool, s styles) string {
	lines := []string{
		s.title.Render("Pools"),
		s.header.Render(fmt.Sprintf("pools: %d", len(pools))),
	}

	if len(pools) == 0 {
		lines = append(lines, s.empty.Render("No pools available."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, pool := range pools {
		state := s.metricMeta.Render("open")
		if pool.IsStaked {
			state = s.staked.Render("staked")
		}
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.pool.Render(poolTitle(pool)),
			" ",
			state,
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderPositions(dashboard application.Dashboard, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Positions"),
		s.header.Render(fmt.Sprintf("positions: %d", len(dashboard.Positions))),
	}

	if len(dashboard.Positions) == 0 {
		lines = append(lines, s.empty.Render("No stake positions yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	names := make(map[domain.PoolID]string, len(dashboard.Pools))
	for _, pool := range dashboard.Pools {
		names[pool.ID] = pool.Name
	}

	for _, position := range dashboard.Positions {
		name, ok := names[position.PoolID]
		if !ok {
			name = fmt.Sprintf("pool %d", position.PoolID)
		}
		lines = append(lines,
			s.pool.Render(fmt.Sprintf("#%d %s: %s %s", position.StakeID, name, position.Amount, position.Token)),
			s.detail.Render("  last harvest: "+formatSince(position.LastHarvestAt, opts.Now)),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderMetrics(dashboard application.Dashboard, s styles) string {
	score := float64(dashboard.PrivacyScore)
	scoreStyle := lipgloss.NewStyle().Foreground(interpolateColor(score, 0, 100))

	lines := []string{
		s.title.Render("Metrics"),
		metricLine("total staked value:", formatUSD(dashboard.TotalStakedValue), s),
		metricLine("pending rewards:", formatUSD(dashboard.PendingRewardEstimate)+" "+s.metricMeta.Render("(estimate)"), s),
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.metricKey.Render("privacy score:"),
			" ",
			renderProgressBar(score, privacyBarWidth, s),
			" ",
			scoreStyle.Render(fmt.Sprintf("%d/100", dashboard.PrivacyScore)),
		),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderPoolSnapshot(snapshot domain.PoolSnapshot, opts RenderOptions, s styles) string {
	status := s.warning.Render("inactive")
	if snapshot.IsActive {
		status = s.staked.Render("active")
	}
	verified := "unverified"
	if snapshot.IsVerified {
		verified = "verified"
	}

	reward := "n/a"
	if snapshot.PublicRewardPool != nil {
		reward = snapshot.PublicRewardPool.String() + " wei"
	}

	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top,
			s.pool.Render(fmt.Sprintf("[%d] %s", snapshot.PoolID, snapshot.Name)),
			" ",
			status,
			" ",
			s.metricMeta.Render(verified),
		),
		s.detail.Render(snapshot.Description),
		metricLine("creator:", snapshot.Creator.Hex(), s),
		metricLine("token:", snapshot.TokenAddress.Hex(), s),
		metricLine("window:", formatWindow(snapshot.StartTime, snapshot.EndTime, opts.Now), s),
		metricLine("public reward pool:", reward, s),
		metricLine("total liquidity:", encryptedLabel(snapshot.TotalLiquidity), s),
		metricLine("reward rate:", encryptedLabel(snapshot.RewardRate), s),
		metricLine("total staked:", encryptedLabel(snapshot.TotalStaked), s),
		metricLine("participants:", encryptedLabel(snapshot.ParticipantCount), s),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func metricLine(key string, value string, s styles) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.metricKey.Render(key), " ", s.detail.Render(value))
}

func poolTitle(pool domain.Pool) string {
	return fmt.Sprintf("[%d] %s (%s)", pool.ID, strings.TrimSpace(pool.Name), pool.Token)
}

func encryptedLabel(handle uint8) string {
	return fmt.Sprintf("encrypted (0x%02x)", handle)
}

// formatUSD renders value with two decimals and thousands separators.
func formatUSD(value decimal.Decimal) string {
	fixed := value.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	sign := ""
	if value.IsNegative() {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s.%s", sign, grouped.String(), frac)
}

func formatSince(at, now time.Time) string {
	if at.IsZero() {
		return "never"
	}
	if now.IsZero() {
		return at.Format(time.RFC3339)
	}

	elapsed := now.Sub(at)
	if elapsed < time.Minute {
		return "just now"
	}
	if elapsed < time.Hour {
		return plural(int(elapsed.Minutes()), "minute") + " ago"
	}
	if elapsed < 24*time.Hour {
		return plural(int(elapsed.Hours()), "hour") + " ago"
	}

	return plural(int(elapsed.Hours()/24), "day") + " ago"
}

func formatWindow(start, end, now time.Time) string {
	if start.IsZero() || end.IsZero() {
		return "unknown"
	}

	window := fmt.Sprintf("%s to %s", start.Format("02 Jan 2006"), end.Format("02 Jan 2006"))
	if now.IsZero() || now.After(end) {
		return window
	}

	days := int(math.Ceil(end.Sub(now).Hours() / 24))
	return fmt.Sprintf("%s (ends in %s)", window, plural(days, "day"))
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100.0))
	if filled > width {
		filled = width
	}

	empty := width - filled
	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", empty))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	// ANSI 256 greyscale ramp, 240 faded to 255 bright.
	baseColor := 240.0
	targetColor := 255.0
	colorCode := int(baseColor + (targetColor-baseColor)*normalized)

	return lipgloss.Color(fmt.Sprintf("%d", colorCode))
}
