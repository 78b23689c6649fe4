package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libshapes/registry"
	"github.com/sgostarter/libshapes/shape"
	"github.com/sgostarter/libshapes/shapeset"
	"github.com/sgostarter/libshapes/shapeutil"
	"github.com/spf13/cast"
)

func main() {
	logger := l.NewConsoleLoggerWrapper()

	events := shape.NewEventChannel(logger)
	events.Subscribe(shape.EventCalculate, func(e shape.Event) {
		d, _ := e.Data.(shape.CalculateData)

		logger.WithFields(l.StringField("shapeID", e.ShapeID), l.StringField("calculation", string(d.Calculation)),
			l.StringField("result", cast.ToString(d.Result))).Info("calculate")
	})

	factory := shape.NewFactory(shape.WithLogger(logger), shape.WithEventChannel(events))

	if len(os.Args) > 1 {
		if err := runSet(os.Args[1], factory, logger); err != nil {
			logger.WithFields(l.ErrorField(err)).Fatal("run shape set failed")
		}

		return
	}

	if err := runDefaultShapes(factory, logger); err != nil {
		logger.WithFields(l.ErrorField(err)).Fatal("run default shapes failed")
	}
}

func runDefaultShapes(factory shape.Factory, logger l.Wrapper) error {
	rectangle, err := factory.CreateRectangle(10, 5)
	if err != nil {
		return err
	}

	circle, err := factory.CreateCircle(7)
	if err != nil {
		return err
	}

	triangle, err := factory.CreateTriangle(3, 4, 5)
	if err != nil {
		return err
	}

	polygon, err := factory.CreatePolygon([]float64{0, 0, 10, 0, 10, 10, 0, 10})
	if err != nil {
		return err
	}

	fmt.Println("Rectangle area:", rectangle.Area())
	fmt.Println("Rectangle perimeter:", rectangle.Perimeter())
	fmt.Println("Rectangle diagonal:", rectangle.Diagonal())
	fmt.Println("Is square:", rectangle.IsSquare())

	fmt.Println("Circle area:", circle.Area())
	fmt.Println("Circle diameter:", circle.Diameter())
	fmt.Println("Circle circumference:", circle.Circumference())

	fmt.Println("Triangle area:", triangle.Area())
	fmt.Println("Triangle is right:", triangle.IsRightTriangle())
	fmt.Println("Triangle is equilateral:", triangle.IsEquilateral())

	fmt.Println("Polygon area:", polygon.Area())
	fmt.Println("Polygon perimeter:", polygon.Perimeter())
	fmt.Println("Polygon vertices:", polygon.VertexCount())
	fmt.Printf("Polygon bounding box: %+v\n", polygon.BoundingBox())

	if err = polygon.Scale(2); err != nil {
		return err
	}

	fmt.Println("Polygon area after scale:", polygon.Area())

	if err = rectangle.Update(shape.Params{shape.ParamWidth: -1}); err != nil {
		fmt.Println("Rejected update:", err, "params kept:", rectangle.Params())
	}

	shapes := []shape.Shape{rectangle, circle, triangle}

	fmt.Println("Total area:", shapeutil.TotalArea(shapes))
	fmt.Println("Total perimeter:", shapeutil.TotalPerimeter(shapes))
	fmt.Println("Area comparison (rectangle - circle):", shapeutil.CompareArea(rectangle, circle))

	reg := registry.NewRegistry(nil, factory, &registry.Config{TombstoneRetention: time.Minute}, logger)

	for _, s := range append(shapes, polygon) {
		if err = reg.Add(s); err != nil {
			return err
		}
	}

	circle.Destroy()

	fmt.Println("Registry shapes after destroy:", len(reg.Shapes()))

	if _, err = reg.Restore(circle.ID()); err != nil {
		return err
	}

	fmt.Println("Registry shapes after restore:", len(reg.Shapes()))

	return nil
}

func runSet(fileName string, factory shape.Factory, logger l.Wrapper) error {
	set, err := shapeset.LoadFile(fileName)
	if err != nil {
		return err
	}

	named, err := set.Build(factory)
	if err != nil {
		return err
	}

	shapes := make([]shape.Shape, 0, len(named))

	for _, n := range named {
		fmt.Printf("%s (%s): area=%v perimeter=%v\n", n.Name, n.Shape.Kind(), n.Shape.Area(), n.Shape.Perimeter())

		shapes = append(shapes, n.Shape)
	}

	logger.WithFields(l.IntField("shapes", len(shapes))).Info("shape set built")

	fmt.Println("Total area:", shapeutil.TotalArea(shapes))
	fmt.Println("Total perimeter:", shapeutil.TotalPerimeter(shapes))

	return nil
}
