package ledger

// DealLine is one trade as it appears in a report.
type DealLine struct {
	Day          int    `json:"day"`
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	ItemID       string `json:"item_id"`
	Item         string `json:"item"`
	Price        int    `json:"price"`
	Profit       *int   `json:"profit,omitempty"`
}

// DepartureLine is one customer who walked out.
type DepartureLine struct {
	Day          int    `json:"day"`
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Reason       string `json:"reason,omitempty"`
}

// DailyStats summarizes a single day.
type DailyStats struct {
	Day         int             `json:"day"`
	Arrived     int             `json:"arrived"`
	Talked      int             `json:"talked"`
	NeverTalked int             `json:"never_talked"`
	Purchases   []DealLine      `json:"purchases"` // Shop bought
	Sales       []DealLine      `json:"sales"`     // Shop sold
	Departures  []DepartureLine `json:"departures"`
}

// InteractionClass is how a customer's visit ended up.
type InteractionClass string

const (
	InteractionDealMade        InteractionClass = "deal_made"
	InteractionLeftWithoutDeal InteractionClass = "left_without_deal"
	InteractionTalkedNoOutcome InteractionClass = "talked_no_outcome"
	InteractionNeverTalked     InteractionClass = "never_talked"
)

// Interaction classifies one customer's visit.
type Interaction struct {
	Day          int              `json:"day"`
	CustomerID   string           `json:"customer_id"`
	CustomerName string           `json:"customer_name"`
	Class        InteractionClass `json:"class"`
}

// FinalStats aggregates a whole run.
type FinalStats struct {
	DaysPlayed     int             `json:"days_played"`
	TotalCustomers int             `json:"total_customers"`
	Talked         int             `json:"talked"`
	NeverTalked    int             `json:"never_talked"`
	CustomersLeft  int             `json:"customers_left"`
	PurchaseCount  int             `json:"purchase_count"`
	SaleCount      int             `json:"sale_count"`
	Purchases      []DealLine      `json:"purchases"`
	Sales          []DealLine      `json:"sales"`
	Spent          int             `json:"spent"`
	Revenue        int             `json:"revenue"`
	TotalProfit    int             `json:"total_profit"` // Sum of sale profits
	StartingMoney  int             `json:"starting_money"`
	FinalMoney     int             `json:"final_money"`
	MoneyDelta     int             `json:"money_delta"`
	Interactions   []Interaction   `json:"interactions"`
	Departures     []DepartureLine `json:"departures"`
}

// Daily derives the report for one day. It reads entries only.
func Daily(entries []Entry, day int) DailyStats {
	ds := DailyStats{
		Day:        day,
		Purchases:  []DealLine{},
		Sales:      []DealLine{},
		Departures: []DepartureLine{},
	}

	for _, e := range entries {
		if e.Day != day {
			continue
		}
		switch p := e.Payload.(type) {
		case Arrival:
			ds.Arrived++
		case Deal:
			line := dealLine(e, p)
			if p.Kind == DealSell {
				ds.Sales = append(ds.Sales, line)
			} else {
				ds.Purchases = append(ds.Purchases, line)
			}
		case Departure:
			ds.Departures = append(ds.Departures, departureLine(e, p))
		case nil:
			if e.Kind == KindTalked {
				ds.Talked++
			}
		}
	}

	ds.NeverTalked = max(ds.Arrived-ds.Talked, 0)
	return ds
}

// visit accumulates what happened to one customer.
type visit struct {
	day    int
	id     string
	name   string
	talked bool
	dealt  bool
	left   bool
}

// Final derives the whole-run report. It reads entries only, so repeated
// calls on the same entries return equal results.
func Final(entries []Entry, startingMoney, finalMoney, daysPlayed int) FinalStats {
	fs := FinalStats{
		DaysPlayed:    daysPlayed,
		StartingMoney: startingMoney,
		FinalMoney:    finalMoney,
		MoneyDelta:    finalMoney - startingMoney,
		Purchases:     []DealLine{},
		Sales:         []DealLine{},
		Interactions:  []Interaction{},
		Departures:    []DepartureLine{},
	}

	var order []talkKey
	visits := make(map[talkKey]*visit)
	lookup := func(e Entry) *visit {
		key := talkKey{day: e.Day, customerID: e.CustomerID}
		v, ok := visits[key]
		if !ok {
			v = &visit{day: e.Day, id: e.CustomerID, name: e.CustomerName}
			visits[key] = v
			order = append(order, key)
		}
		return v
	}

	for _, e := range entries {
		switch p := e.Payload.(type) {
		case Arrival:
			lookup(e)
		case Deal:
			lookup(e).dealt = true
			line := dealLine(e, p)
			if p.Kind == DealSell {
				fs.Sales = append(fs.Sales, line)
				fs.Revenue += p.Price
				if p.Profit != nil {
					fs.TotalProfit += *p.Profit
				}
			} else {
				fs.Purchases = append(fs.Purchases, line)
				fs.Spent += p.Price
			}
		case Departure:
			lookup(e).left = true
			fs.Departures = append(fs.Departures, departureLine(e, p))
		case nil:
			if e.Kind == KindTalked {
				lookup(e).talked = true
			}
		}
	}

	fs.PurchaseCount = len(fs.Purchases)
	fs.SaleCount = len(fs.Sales)
	fs.TotalCustomers = len(order)

	for _, key := range order {
		v := visits[key]
		if v.talked {
			fs.Talked++
		} else {
			fs.NeverTalked++
		}
		if v.left {
			fs.CustomersLeft++
		}
		fs.Interactions = append(fs.Interactions, Interaction{
			Day:          v.day,
			CustomerID:   v.id,
			CustomerName: v.name,
			Class:        classify(v),
		})
	}

	return fs
}

func classify(v *visit) InteractionClass {
	switch {
	case !v.talked:
		return InteractionNeverTalked
	case v.dealt:
		return InteractionDealMade
	case v.left:
		return InteractionLeftWithoutDeal
	default:
		return InteractionTalkedNoOutcome
	}
}

func dealLine(e Entry, d Deal) DealLine {
	line := DealLine{
		Day:          e.Day,
		CustomerID:   e.CustomerID,
		CustomerName: e.CustomerName,
		ItemID:       d.ItemID,
		Item:         d.Item,
		Price:        d.Price,
	}
	if d.Profit != nil {
		profit := *d.Profit
		line.Profit = &profit
	}
	return line
}

func departureLine(e Entry, d Departure) DepartureLine {
	return DepartureLine{
		Day:          e.Day,
		CustomerID:   e.CustomerID,
		CustomerName: e.CustomerName,
		Reason:       d.Reason,
	}
}
