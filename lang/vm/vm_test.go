package vm_test

import (
	"bytes"
	"testing"

	"github.com/mna/loxvm/lang/vm"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, source string) (stdout, stderr string, result vm.Result) {
	t.Helper()
	var out, errOut bytes.Buffer
	m := vm.New()
	m.Stdout = &out
	m.Stderr = &errOut
	result = m.Interpret(source)
	return out.String(), errOut.String(), result
}

func TestArithmeticPrecedence(t *testing.T) {
	out, _, res := run(t, `print 1 + 2 * 3 - 4 / 2;`)
	require.Equal(t, vm.ResultOK, res)
	require.Equal(t, "5\n", out)
}

func TestStringInterningEquality(t *testing.T) {
	out, _, res := run(t, `
		var a = "foo" + "bar";
		var b = "foobar";
		print a == b;
	`)
	require.Equal(t, vm.ResultOK, res)
	require.Equal(t, "true\n", out)
}

func TestForLoopAccumulation(t *testing.T) {
	out, _, res := run(t, `
		var sum = 0;
		for (var i = 0; i < 5; i = i + 1) {
			sum = sum + i;
		}
		print sum;
	`)
	require.Equal(t, vm.ResultOK, res)
	require.Equal(t, "10\n", out)
}

func TestIfElseTruthiness(t *testing.T) {
	out, _, res := run(t, `
		if (nil) {
			print "unreachable";
		} else if (0) {
			print "zero is truthy";
		} else {
			print "fallback";
		}
	`)
	require.Equal(t, vm.ResultOK, res)
	require.Equal(t, "zero is truthy\n", out)
}

func TestLexicalScopingAndShadowing(t *testing.T) {
	out, _, res := run(t, `
		var x = "outer";
		{
			var x = "inner";
			print x;
		}
		print x;
	`)
	require.Equal(t, vm.ResultOK, res)
	require.Equal(t, "inner\nouter\n", out)
}

func TestClosureCapturesSurviveEnclosingFrame(t *testing.T) {
	out, _, res := run(t, `
		fun makeCounter() {
			var count = 0;
			fun counter() {
				count = count + 1;
				return count;
			}
			return counter;
		}
		var counter = makeCounter();
		print counter();
		print counter();
		print counter();
	`)
	require.Equal(t, vm.ResultOK, res)
	require.Equal(t, "1\n2\n3\n", out)
}

func TestRuntimeErrorUndefinedVariable(t *testing.T) {
	_, errOut, res := run(t, `print undefined;`)
	require.Equal(t, vm.ResultRuntimeError, res)
	require.Contains(t, errOut, "Undefined variable 'undefined'.")
}

func TestRuntimeErrorTypeMismatch(t *testing.T) {
	_, errOut, res := run(t, `print 1 + "two";`)
	require.Equal(t, vm.ResultRuntimeError, res)
	require.Contains(t, errOut, "Operands must be two numbers or two strings.")
}

func TestCompileErrorRecoversAndReportsAll(t *testing.T) {
	_, errOut, res := run(t, `
		var = 1;
		print 2 +;
	`)
	require.Equal(t, vm.ResultCompileError, res)
	require.Contains(t, errOut, "[line 2]")
	require.Contains(t, errOut, "[line 3]")
}

func TestNativeClockReturnsNumber(t *testing.T) {
	out, _, res := run(t, `print clock() > 0;`)
	require.Equal(t, vm.ResultOK, res)
	require.Equal(t, "true\n", out)
}

func TestStackOverflowOnUnboundedRecursion(t *testing.T) {
	_, errOut, res := run(t, `
		fun recurse() {
			return recurse();
		}
		recurse();
	`)
	require.Equal(t, vm.ResultRuntimeError, res)
	require.Contains(t, errOut, "Stack overflow.")
}

func TestStressGCKeepsReachableState(t *testing.T) {
	m := vm.New()
	m.Heap().StressGC = true
	var out bytes.Buffer
	m.Stdout = &out

	res := m.Interpret(`
		var acc = "";
		for (var i = 0; i < 20; i = i + 1) {
			acc = acc + "x";
		}
		print acc;
	`)
	require.Equal(t, vm.ResultOK, res)
	require.Equal(t, 20, len(out.String())-1)
}
