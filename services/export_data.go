package services

import "strconv"

// analyticsBaseColumns is the fixed scalar column order of the export
// contract. Nested per-service maps are appended as flat columns so any
// consumer gets a stable tabular shape.
var analyticsBaseColumns = []string{
	"ClientID",
	"First_Quote_Date",
	"Last_Quote_Date",
	"Average_Days_Between_Quotes",
	"Years_Active",
	"Projects_Per_Year",
	"Project_Diversity",
	"Total_Project_Value",
	"CLV",
	"Total_Quotations",
	"Converted_Quotations",
	"Lost_Quotations",
	"Win_Rate_%",
	"Loss_Rate_%",
	"Top_Service_by_Volume",
	"Top_Service_by_Value",
	"Revenue_by_Service",
	"Retention_Rate",
	"Churn_Rate",
	"Quote_to_Project_Ratio",
	"Customer_Segment",
	"Idle_Time_Days",
	"Idle_Time_Years",
	"Total_Offers_Sent",
	"OCDS",
	"Avg_Offers_per_Project",
}

const exportDateLayout = "2006-01-02"

// AnalyticsExportColumns returns the full export header: the scalar columns
// followed by four flat columns per service over the whole enumeration
// (present or not in the source sheet — absent entries export as 0).
func AnalyticsExportColumns() []string {
	cols := make([]string, 0, len(analyticsBaseColumns)+4*len(ServiceColumns))
	cols = append(cols, analyticsBaseColumns...)
	for _, svc := range ServiceColumns {
		cols = append(cols, "Share_"+svc)
	}
	for _, svc := range ServiceColumns {
		cols = append(cols, "AvgPerProject_"+svc)
	}
	for _, svc := range ServiceColumns {
		cols = append(cols, "Total_"+svc)
	}
	for _, svc := range ServiceColumns {
		cols = append(cols, "ProjectDiversity_"+svc)
	}
	return cols
}

// FlattenAnalytics turns the per-client records into string cells matching
// AnalyticsExportColumns. Missing dates export as empty cells; sparse map
// entries default to 0.
func FlattenAnalytics(clients []ClientAnalytics) [][]string {
	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		firstDate, lastDate := "", ""
		if c.HasDateData {
			firstDate = c.FirstQuoteDate.Format(exportDateLayout)
			lastDate = c.LastQuoteDate.Format(exportDateLayout)
		}

		row := []string{
			c.ClientID,
			firstDate,
			lastDate,
			formatFloatCell(c.AverageDaysBetweenQuotes),
			formatFloatCell(c.YearsActive),
			formatFloatCell(c.ProjectsPerYear),
			strconv.Itoa(c.ProjectDiversity),
			formatFloatCell(c.TotalProjectValue),
			formatFloatCell(c.CLV),
			strconv.Itoa(c.TotalQuotations),
			strconv.Itoa(c.ConvertedQuotations),
			strconv.Itoa(c.LostQuotations),
			formatFloatCell(c.WinRatePct),
			formatFloatCell(c.LossRatePct),
			c.TopServiceByVolume,
			c.TopServiceByValue,
			formatFloatCell(c.RevenueByService),
			formatFloatCell(c.RetentionRate),
			formatFloatCell(c.ChurnRate),
			formatFloatCell(c.QuoteToProjectRatio),
			c.CustomerSegment,
			formatFloatCell(c.IdleTimeDays),
			formatFloatCell(c.IdleTimeYears),
			strconv.Itoa(c.TotalOffersSent),
			formatFloatCell(c.OCDS),
			formatFloatCell(c.AvgOffersPerProject),
		}
		for _, svc := range ServiceColumns {
			row = append(row, formatFloatCell(c.ServiceRevenueBreakdown[svc]))
		}
		for _, svc := range ServiceColumns {
			row = append(row, formatFloatCell(c.ServiceAvgRevenuePerProject[svc]))
		}
		for _, svc := range ServiceColumns {
			row = append(row, formatFloatCell(c.ServiceTotalRevenue[svc]))
		}
		for _, svc := range ServiceColumns {
			row = append(row, formatFloatCell(c.ProjectDiversityBreakdown[svc]))
		}
		rows = append(rows, row)
	}
	return rows
}
