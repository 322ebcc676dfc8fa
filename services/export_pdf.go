package services

import (
	"fmt"
	"sort"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// pdfTopClients caps the client table in the PDF summary.
const pdfTopClients = 25

// GenerateAnalyticsPDF creates a portfolio summary PDF: totals across all
// clients plus the top clients by CLV. It returns the raw PDF bytes.
func GenerateAnalyticsPDF(clients []ClientAnalytics, generatedDate string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addAnalyticsHeader(m, generatedDate)
	addPortfolioSummary(m, clients)
	addClientTableHeader(m)

	ranked := make([]ClientAnalytics, len(clients))
	copy(ranked, clients)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CLV > ranked[j].CLV
	})
	if len(ranked) > pdfTopClients {
		ranked = ranked[:pdfTopClients]
	}
	for i, c := range ranked {
		addClientTableRow(m, i+1, c)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addAnalyticsHeader(m core.Maroto, generatedDate string) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New("Client Analytics Summary", props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Generated: %s", generatedDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)
	m.AddRows(row.New(4))
}

// addPortfolioSummary adds the whole-portfolio totals block.
func addPortfolioSummary(m core.Maroto, clients []ClientAnalytics) {
	var totalCLV, totalValue float64
	var converted, totalQuotes, high int
	for _, c := range clients {
		totalCLV += c.CLV
		totalValue += c.TotalProjectValue
		converted += c.ConvertedQuotations
		totalQuotes += c.TotalQuotations
		if c.CustomerSegment == SegmentHigh {
			high++
		}
	}
	var winRate float64
	if totalQuotes > 0 {
		winRate = float64(converted) / float64(totalQuotes) * 100
	}

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}
	labelStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left}
	valueStyle := props.Text{Size: 9, Align: align.Right}

	lines := []struct {
		label string
		value string
	}{
		{"Clients", fmt.Sprintf("%d", len(clients))},
		{"High-value clients", fmt.Sprintf("%d", high)},
		{"Total CLV", FormatAED(totalCLV)},
		{"Total Project Value", FormatAED(totalValue)},
		{"Portfolio Win Rate", FormatPercent(winRate)},
	}
	for _, line := range lines {
		m.AddRows(
			row.New(7).Add(
				col.New(8).Add(text.New(line.label, labelStyle)).WithStyle(summaryCell),
				col.New(4).Add(text.New(line.value, valueStyle)).WithStyle(summaryCell),
			),
		)
	}
	m.AddRows(row.New(5))
}

func addClientTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Client", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Segment", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("CLV", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Win Rate", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Retention", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Quotes", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Top Service", headerText)).WithStyle(&headerCell),
		),
	)
}

func addClientTableRow(m core.Maroto, rank int, c ClientAnalytics) {
	var cellStyle *props.Cell
	if rank%2 == 0 {
		bg := &props.Color{Red: 245, Green: 245, Blue: 245}
		cellStyle = &props.Cell{BackgroundColor: bg}
	}

	baseText := props.Text{Size: 7, Align: align.Center}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	colRank := col.New(1).Add(text.New(fmt.Sprintf("%d", rank), baseText))
	colClient := col.New(3).Add(text.New(c.ClientID, leftText))
	colSegment := col.New(1).Add(text.New(c.CustomerSegment, baseText))
	colCLV := col.New(2).Add(text.New(FormatAED(c.CLV), rightText))
	colWin := col.New(1).Add(text.New(FormatPercent(c.WinRatePct), rightText))
	colRetention := col.New(1).Add(text.New(fmt.Sprintf("%.2f", c.RetentionRate), rightText))
	colQuotes := col.New(1).Add(text.New(fmt.Sprintf("%d", c.TotalQuotations), rightText))
	colTop := col.New(2).Add(text.New(c.TopServiceByValue, baseText))

	if cellStyle != nil {
		colRank = colRank.WithStyle(cellStyle)
		colClient = colClient.WithStyle(cellStyle)
		colSegment = colSegment.WithStyle(cellStyle)
		colCLV = colCLV.WithStyle(cellStyle)
		colWin = colWin.WithStyle(cellStyle)
		colRetention = colRetention.WithStyle(cellStyle)
		colQuotes = colQuotes.WithStyle(cellStyle)
		colTop = colTop.WithStyle(cellStyle)
	}

	m.AddRows(
		row.New(7).Add(
			colRank,
			colClient,
			colSegment,
			colCLV,
			colWin,
			colRetention,
			colQuotes,
			colTop,
		),
	)
}
