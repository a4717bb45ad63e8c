package promised_test

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/bjaus/promised"
)

type Rect struct {
	promised.Object
	w, h int
}

var (
	rectWidth = promised.Linked("width", func(r *Rect) (int, error) {
		return r.w, nil
	})
	rectHeight = promised.Linked("height", func(r *Rect) (int, error) {
		return r.h, nil
	})
	rectArea = promised.New("area", func(r *Rect) (int, error) {
		fmt.Println("computing area")
		w, err := rectWidth.Get(r)
		if err != nil {
			return 0, err
		}
		h, err := rectHeight.Get(r)
		if err != nil {
			return 0, err
		}
		return w * h, nil
	})
)

func init() {
	rectWidth.Links(rectArea)
	rectHeight.Links(rectArea)
}

func ExampleLinked() {
	r := &Rect{w: 2, h: 3}

	a, _ := rectArea.Get(r)
	fmt.Println(a)
	a, _ = rectArea.Get(r)
	fmt.Println(a)

	_ = rectWidth.Set(r, 10)
	a, _ = rectArea.Get(r)
	fmt.Println(a)

	// Output:
	// computing area
	// 6
	// 6
	// computing area
	// 30
}

type Wheel struct {
	promised.Object
}

type Car struct {
	promised.Object
}

var (
	wheelSize = promised.Linked("size", func(*Wheel) (int, error) {
		return 16, nil
	})
	carWheel = promised.Linked("wheel", func(*Car) (*Wheel, error) {
		return &Wheel{}, nil
	})
	carClearance = promised.Linked("clearance", func(c *Car) (int, error) {
		w, err := carWheel.Get(c)
		if err != nil {
			return 0, err
		}
		size, err := wheelSize.Get(w)
		if err != nil {
			return 0, err
		}
		return size / 2, nil
	})
)

func init() {
	carWheel.Chain(wheelSize, carClearance)
}

func ExampleProperty_Chain() {
	car := &Car{}

	c, _ := carClearance.Get(car)
	fmt.Println(c)

	wheel, _ := carWheel.Peek(car)
	_ = wheelSize.Set(wheel, 20)
	c, _ = carClearance.Get(car)
	fmt.Println(c)

	// a new wheel carries the dependency with it
	_ = carWheel.Set(car, &Wheel{})
	_ = wheelSize.Set(wheel, 40)
	c, _ = carClearance.Get(car)
	fmt.Println(c)

	// Output:
	// 8
	// 10
	// 8
}

func ExampleMember() {
	squares := promised.NewMember(func(x int) (int, error) {
		fmt.Println("squaring", x)
		return x * x, nil
	})

	v, _ := squares.Get(3)
	fmt.Println(v)
	v, _ = squares.Get(3)
	fmt.Println(v)

	squares.Set(3, 0)
	v, _ = squares.Get(3)
	fmt.Println(v)

	// Output:
	// squaring 3
	// 9
	// 9
	// 0
}

func ExampleWarm() {
	type Report struct {
		promised.Object
	}

	title := promised.New("title", func(*Report) (string, error) {
		return "", errors.New("no title")
	})
	body := promised.New("body", func(*Report) (string, error) {
		return "", errors.New("no body")
	})

	err := promised.Warm(&Report{}, title, body)

	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, e := range merr.Errors {
			fmt.Println(e)
		}
	}

	// Output:
	// promised: keep title: no title
	// promised: keep body: no body
}
