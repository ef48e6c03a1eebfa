package shoppinglist

import "testing"

func TestAggregateSugarSaltExample(t *testing.T) {
	items := []CartLineItem{
		{IngredientName: "Sugar", Unit: "gram", Amount: 100},
		{IngredientName: "Sugar", Unit: "gram", Amount: 50},
		{IngredientName: "Salt", Unit: "gram", Amount: 10},
	}
	list := Aggregate(items)
	want := []Line{
		{Number: 1, Name: "Sugar", Unit: "gram", Total: 150},
		{Number: 2, Name: "Salt", Unit: "gram", Total: 10},
	}
	if len(list.Lines) != len(want) {
		t.Fatalf("lines want %d got %d", len(want), len(list.Lines))
	}
	for i := range want {
		if list.Lines[i] != want[i] {
			t.Fatalf("line %d want %+v got %+v", i, want[i], list.Lines[i])
		}
	}
}

func TestAggregateGroupsByNameAndUnit(t *testing.T) {
	list := Aggregate([]CartLineItem{
		{IngredientName: "молоко", Unit: "л", Amount: 1},
		{IngredientName: "молоко", Unit: "мл", Amount: 200},
		{IngredientName: "молоко", Unit: "л", Amount: 2},
	})
	if len(list.Lines) != 2 {
		t.Fatalf("different units must stay separate, got %+v", list.Lines)
	}
	if list.Lines[0].Unit != "л" || list.Lines[0].Total != 3 {
		t.Fatalf("first line want 3 л got %+v", list.Lines[0])
	}
	if list.Lines[1].Unit != "мл" || list.Lines[1].Total != 200 {
		t.Fatalf("second line want 200 мл got %+v", list.Lines[1])
	}
}

func TestAggregateConservesAmounts(t *testing.T) {
	items := []CartLineItem{
		{IngredientName: "a", Unit: "g", Amount: 7},
		{IngredientName: "b", Unit: "g", Amount: 3},
		{IngredientName: "a", Unit: "g", Amount: 11},
		{IngredientName: "c", Unit: "kg", Amount: 1},
		{IngredientName: "b", Unit: "g", Amount: 5},
	}
	inputTotal := 0
	for _, item := range items {
		inputTotal += item.Amount
	}
	list := Aggregate(items)
	if got := list.TotalAmount(); got != inputTotal {
		t.Fatalf("sum of totals want %d got %d", inputTotal, got)
	}
	seen := make(map[lineKey]bool)
	for _, line := range list.Lines {
		key := lineKey{name: line.Name, unit: line.Unit}
		if seen[key] {
			t.Fatalf("duplicate line for %+v", key)
		}
		seen[key] = true
	}
}

func TestAggregateNumberingAndDeterminism(t *testing.T) {
	items := []CartLineItem{
		{IngredientName: "яйца", Unit: "шт", Amount: 2},
		{IngredientName: "мука", Unit: "гр", Amount: 200},
		{IngredientName: "соль", Unit: "щепотка", Amount: 1},
		{IngredientName: "мука", Unit: "гр", Amount: 50},
	}
	first := Aggregate(items)
	for i := 0; i < 20; i++ {
		again := Aggregate(items)
		if len(again.Lines) != len(first.Lines) {
			t.Fatalf("line count changed between runs")
		}
		for j := range first.Lines {
			if again.Lines[j] != first.Lines[j] {
				t.Fatalf("run %d line %d differs: %+v vs %+v", i, j, again.Lines[j], first.Lines[j])
			}
		}
	}
	for i, line := range first.Lines {
		if line.Number != i+1 {
			t.Fatalf("numbering must be contiguous from 1, line %d has %d", i, line.Number)
		}
	}
	if first.Lines[0].Name != "Яйца" || first.Lines[1].Name != "Мука" {
		t.Fatalf("first-seen order violated: %+v", first.Lines)
	}
}

func TestAggregateEmpty(t *testing.T) {
	list := Aggregate(nil)
	if !list.Empty() || list.TotalAmount() != 0 {
		t.Fatalf("empty input want empty list got %+v", list)
	}
}

func TestCapitalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "сахар", want: "Сахар"},
		{in: "sugar", want: "Sugar"},
		{in: "сливки 33%", want: "Сливки 33%"},
		{in: "iPhone charger", want: "IPhone charger"},
		{in: "  соль", want: "Соль"},
		{in: "", want: ""},
		{in: "1 яйцо", want: "1 яйцо"},
	}
	for _, item := range cases {
		if got := Capitalize(item.in); got != item.want {
			t.Fatalf("capitalize %q want %q got %q", item.in, item.want, got)
		}
	}
}

func TestAggregateIgnoresSurroundingWhitespace(t *testing.T) {
	list := Aggregate([]CartLineItem{
		{IngredientName: "sugar", Unit: "g", Amount: 1},
		{IngredientName: "sugar ", Unit: "g", Amount: 2},
		{IngredientName: " sugar", Unit: "kg", Amount: 4},
	})
	if len(list.Lines) != 2 {
		t.Fatalf("want 2 lines got %d: %+v", len(list.Lines), list.Lines)
	}
	if got := list.Lines[0]; got.Name != "Sugar" || got.Unit != "g" || got.Total != 3 {
		t.Fatalf("unexpected first line: %+v", got)
	}
	if got := list.Lines[1]; got.Name != "Sugar" || got.Unit != "kg" || got.Total != 4 {
		t.Fatalf("unexpected second line: %+v", got)
	}
}
