package main

import (
	"errors"
	"image"
	"testing"
	"time"
)

// blockingExtractor satisfies entityFinder with one extractor that parks
// until released, so timeout behavior is observable.
type blockingExtractor struct {
	release chan struct{}
	done    chan struct{}
}

func (b *blockingExtractor) FindMinions(f *Frame) []Minion { return nil }

func (b *blockingExtractor) FindChampions(f *Frame) []Champion {
	<-b.release
	close(b.done)
	return nil
}

func (b *blockingExtractor) FindStructures(f *Frame) []Structure { return nil }

// fixedExtractor satisfies entityFinder with canned results.
type fixedExtractor struct{ set EntitySet }

func (e *fixedExtractor) FindMinions(f *Frame) []Minion       { return e.set.Minions }
func (e *fixedExtractor) FindChampions(f *Frame) []Champion   { return e.set.Champions }
func (e *fixedExtractor) FindStructures(f *Frame) []Structure { return e.set.Structures }

func TestFindAllReturnsCompleteSet(t *testing.T) {
	f, err := NewFrame(image.NewRGBA(image.Rect(0, 0, 64, 64)))
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	defer f.Close()

	want := EntitySet{
		Minions:    []Minion{{Unit: unitAt(100, 100, true, 0.8)}},
		Champions:  []Champion{champAt(400, 400, false, 0.9, 4)},
		Structures: []Structure{{Unit: unitAt(600, 600, true, 1.0), Kind: StructureBig}},
	}
	p := NewPerceptor(NewConfig(), &fixedExtractor{set: want})

	set, err := p.FindAll(f, time.Second)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(set.Minions) != 1 || len(set.Champions) != 1 || len(set.Structures) != 1 {
		t.Errorf("set sizes = %d/%d/%d, want 1/1/1",
			len(set.Minions), len(set.Champions), len(set.Structures))
	}
	if f.mat.Closed() {
		t.Error("frame closed on the success path; the caller owns it")
	}
}

func TestFindAllTimeoutAdoptsFrame(t *testing.T) {
	f, err := NewFrame(image.NewRGBA(image.Rect(0, 0, 64, 64)))
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	ext := &blockingExtractor{release: make(chan struct{}), done: make(chan struct{})}
	p := NewPerceptor(NewConfig(), ext)

	set, err := p.FindAll(f, 10*time.Millisecond)
	if !errors.Is(err, ErrPerceptionTimeout) {
		t.Fatalf("FindAll err = %v, want ErrPerceptionTimeout", err)
	}
	if len(set.Minions) != 0 || len(set.Champions) != 0 || len(set.Structures) != 0 {
		t.Errorf("timed-out cycle returned partial data: %+v", set)
	}
	if f.mat.Closed() {
		t.Fatal("frame closed while an extractor still held it")
	}

	close(ext.release)
	<-ext.done
	deadline := time.Now().Add(2 * time.Second)
	for !f.mat.Closed() || !f.hsv.Closed() {
		if time.Now().After(deadline) {
			t.Fatal("frame not closed after the straggler returned")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPartitionBucketsByAllegiance(t *testing.T) {
	self := champAt(960, 540, true, 1.0, 5)
	self.Controllable = true
	set := EntitySet{
		Minions: []Minion{
			{Unit: unitAt(100, 100, true, 0.8)},
			{Unit: unitAt(200, 100, false, 0.3)},
			{Unit: unitAt(300, 100, false, 0.6)},
		},
		Champions: []Champion{
			self,
			champAt(400, 400, true, 0.9, 4),
			champAt(500, 400, false, 0.7, 6),
		},
		Structures: []Structure{
			{Unit: unitAt(600, 600, true, 1.0), Kind: StructureBig},
			{Unit: unitAt(700, 600, false, 0.5), Kind: StructureSmall},
		},
	}

	obs := Partition(nil, set)
	if obs.Player == nil || !obs.Player.Controllable {
		t.Fatal("controlled champion not found")
	}
	if len(obs.AllyMinions) != 1 || len(obs.EnemyMinions) != 2 {
		t.Errorf("minions split %d/%d, want 1/2", len(obs.AllyMinions), len(obs.EnemyMinions))
	}
	if len(obs.AllyChampions) != 1 || len(obs.EnemyChampions) != 1 {
		t.Errorf("champions split %d/%d, want 1/1", len(obs.AllyChampions), len(obs.EnemyChampions))
	}
	if len(obs.AllyStructures) != 1 || len(obs.EnemyStructures) != 1 {
		t.Errorf("structures split %d/%d, want 1/1", len(obs.AllyStructures), len(obs.EnemyStructures))
	}
}

func TestPartitionSingleControllable(t *testing.T) {
	first := champAt(100, 100, true, 1.0, 3)
	first.Controllable = true
	second := champAt(900, 900, true, 0.5, 7)
	second.Controllable = true

	obs := Partition(nil, EntitySet{Champions: []Champion{first, second}})
	if obs.Player == nil {
		t.Fatal("no player found")
	}
	if obs.Player.Center() != first.Center() {
		t.Errorf("player = %+v, want the first controllable hit", obs.Player.Center())
	}
	// The false positive still counts as an ally rather than vanishing.
	if len(obs.AllyChampions) != 1 {
		t.Errorf("extra controllable not demoted to ally: %d allies", len(obs.AllyChampions))
	}
}

func TestPartitionNoPlayer(t *testing.T) {
	obs := Partition(nil, EntitySet{
		Champions: []Champion{champAt(500, 400, false, 0.7, 6)},
	})
	if obs.Player != nil {
		t.Errorf("player = %+v, want nil", obs.Player)
	}
	if len(obs.EnemyChampions) != 1 {
		t.Errorf("enemy champion lost: %d", len(obs.EnemyChampions))
	}
}
