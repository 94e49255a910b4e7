package lang_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ardnew/kaleido/lang"
)

func Example() {
	ast, err := lang.ParseString(context.Background(),
		"def average(a b) (a+b)*0.5; extern print(x); print(average(3, 4))")
	if err != nil {
		fmt.Println(err)

		return
	}

	_ = ast.Format(context.Background(), os.Stdout)

	// Output:
	// def average(a, b) (a + b) * .5;
	// extern print(x);
	// print(average(3, 4));
}

func ExampleParser_Items() {
	p := lang.NewParser(strings.NewReader("def f( ) + ; 4+5;"))

	for item, err := range p.Items(context.Background()) {
		if err != nil {
			fmt.Println("error:", err)

			continue
		}

		fmt.Println(item.Kind, item)
	}

	// Output:
	// error: 1:10: unknown token when expecting an expression
	// expression 4 + 5;
}

func ExampleParser_ParseExpression() {
	prec := lang.DefaultPrecedence()
	_ = prec.Set('^', 50)

	p := lang.NewParser(strings.NewReader("1+2*3^4-5"), lang.WithPrecedence(prec))

	e, err := p.ParseExpression(context.Background())
	if err != nil {
		fmt.Println(err)

		return
	}

	fmt.Println(lang.Sprint(e, prec))
	fmt.Println(e)

	// Output:
	// 1 + 2 * 3 ^ 4 - 5
	// 1 + 2 * (3 ^ 4) - 5
}

func ExampleParseBinaryOperator() {
	op, prec, err := lang.ParseBinaryOperator("% = 30")
	if err != nil {
		fmt.Println(err)

		return
	}

	table := lang.DefaultPrecedence()
	_ = table.Set(op, prec)

	fmt.Println(table)

	// Output:
	// <=10 +=20 -=20 %=30 *=40
}

func ExampleErrors() {
	_, err := lang.ParseString(context.Background(), "f(1 2; (3", lang.WithSource("demo.ks"))

	var errs lang.Errors
	if errors.As(err, &errs) {
		for _, e := range errs {
			fmt.Println(e)
		}
	}

	fmt.Println(errors.Is(err, lang.ErrExpectedArgument))

	// Output:
	// demo.ks:1:5: expected ')' or ',' in argument list
	// demo.ks:1:10: expected ')'
	// true
}
