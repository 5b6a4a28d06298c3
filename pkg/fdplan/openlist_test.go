package fdplan

import "testing"

func allOpenLists() map[string]OpenList {
	return map[string]OpenList{
		"fifo":   NewFIFOList(),
		"heap":   NewHeapList(),
		"bucket": NewBucketList(100),
		"map":    NewMapList(),
	}
}

func TestOpenListPopEmptyReportsFalse(t *testing.T) {
	for name, list := range allOpenLists() {
		t.Run(name, func(t *testing.T) {
			if _, ok := list.Pop(); ok {
				t.Error("expected Pop on an empty list to report false")
			}
		})
	}
}

func TestOpenListClearEmptiesList(t *testing.T) {
	for name, list := range allOpenLists() {
		t.Run(name, func(t *testing.T) {
			list.Push(1, NoState, nil)
			list.Clear()
			if _, ok := list.Pop(); ok {
				t.Error("expected Pop after Clear to report false")
			}
		})
	}
}

// TestHeapListAndBucketListCostOrder checks that all three
// cost-ordered variants (heap, bucket, map) pop entries in
// nondecreasing cost order regardless of push order.
func TestHeapListAndBucketListCostOrder(t *testing.T) {
	pushOrder := []int{5, 1, 3, 1, 0, 4}

	for name, list := range map[string]OpenList{"heap": NewHeapList(), "bucket": NewBucketList(10), "map": NewMapList()} {
		t.Run(name, func(t *testing.T) {
			for _, c := range pushOrder {
				list.Push(c, NoState, nil)
			}
			var popped []int
			for {
				e, ok := list.Pop()
				if !ok {
					break
				}
				popped = append(popped, e.Cost)
			}
			for i := 1; i < len(popped); i++ {
				if popped[i] < popped[i-1] {
					t.Fatalf("cost order violated: %v", popped)
				}
			}
			if len(popped) != len(pushOrder) {
				t.Fatalf("expected %d entries popped, got %d", len(pushOrder), len(popped))
			}
		})
	}
}

func TestFIFOListInsertionOrder(t *testing.T) {
	l := NewFIFOList()
	op1 := &Operator{Name: "op1"}
	op2 := &Operator{Name: "op2"}
	l.Push(5, NoState, op1)
	l.Push(1, NoState, op2)

	first, _ := l.Pop()
	second, _ := l.Pop()
	if first.Op.Name != "op1" || second.Op.Name != "op2" {
		t.Error("FIFOList must ignore cost and pop in insertion order")
	}
}

func TestBucketListPushExceedingMaxCostPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected Push beyond maxCost to panic")
		}
	}()
	l := NewBucketList(3)
	l.Push(4, NoState, nil)
}
