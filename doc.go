// Package relplot parses and evaluates the relations of a graphing
// calculator, such as "y < sin(x)" or "x^2 + y^2 == 1 || |x| < 1".
//
// The syntax is close to math you'd write in your notes. "2x^2" is the same
// as "2*(x^2)", "-2^2" is "-(2^2)", and "x^y^z" is "x^(y^z)". Relations are
// comparisons (==, <, <=, >, >=) joined by && and ||, which may be grouped
// with parentheses. Absolute value is written |x|, and ⌈x⌉ and ⌊x⌋ are
// ceiling and floor.
//
// Parsed expressions live in a Tree, an arena of nodes addressed by ExprID.
// Each node carries its type, its free variables, and a structural hash, so
// equal sub-expressions can be found cheaply with Tree.Equal.
//
// Constant expressions evaluate on two tracks at once. Every value carries a
// decorated interval enclosure from package interval, and values that are
// exactly rational also carry a big.Rat, so (1/3)+(1/3) evaluates to exactly
// 2/3 while sin(1) evaluates to a tight enclosure.
package relplot
