package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/jmoreira/produtos-cli/pkg/api"
	"github.com/jmoreira/produtos-cli/pkg/produto"
	"github.com/jmoreira/produtos-cli/pkg/session"
)

func loginCommand(a *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "authenticate against the API and store the session token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Usage: "account email (prompted when omitted)"},
		},
		Action: func(c *cli.Context) error {
			email := c.String("email")
			if email == `` {
				var err error
				if email, err = promptLine("email: "); err != nil {
					return err
				}
			}
			password, err := promptPassword("password: ")
			if err != nil {
				return err
			}

			tok, expiration, err := a.client.Login(c.Context, email, password)
			if err != nil {
				// On the login endpoint a 401 means bad credentials, not an
				// expired session.
				if errors.Is(err, api.ErrSessionExpired) {
					return cli.Exit("invalid email or password", 1)
				}
				return friendly(err)
			}

			if err := a.session.Login(c.Context, tok, expiration); err != nil {
				return err
			}
			fmt.Printf("logged in, session valid until %s\n", expiration.Local().Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func registerCommand(a *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "create a new account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Usage: "account email (prompted when omitted)"},
		},
		Action: func(c *cli.Context) error {
			email := c.String("email")
			if email == `` {
				var err error
				if email, err = promptLine("email: "); err != nil {
					return err
				}
			}
			password, err := promptPassword("password: ")
			if err != nil {
				return err
			}
			confirm, err := promptPassword("confirm password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return cli.Exit("passwords do not match", 1)
			}

			if err := a.client.Register(c.Context, email, password, confirm); err != nil {
				return friendly(err)
			}
			fmt.Println("account created, run `produtos login` to sign in")
			return nil
		},
	}
}

func logoutCommand(a *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "drop the stored session",
		Action: func(c *cli.Context) error {
			if err := a.session.Logout(c.Context); err != nil {
				return err
			}
			fmt.Println("logged out")
			return nil
		},
	}
}

func whoamiCommand(a *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the current session state",
		Action: func(c *cli.Context) error {
			if err := a.session.Init(c.Context); err != nil {
				return err
			}

			if a.session.State() != session.StateAuthenticated {
				fmt.Println("anonymous (not logged in)")
				return nil
			}

			u := a.session.User()
			fmt.Println("authenticated")
			if u.Email != `` {
				fmt.Printf("  email:   %s\n", u.Email)
			}
			if !u.ExpiresAt.IsZero() {
				fmt.Printf("  expires: %s\n", u.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

func listCommand(a *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list products",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "filter", Usage: "filter the fetched list locally by nome, categoria or descricao"},
		},
		Action: func(c *cli.Context) error {
			if err := a.requireSession(c); err != nil {
				return err
			}
			if err := a.board.Load(c.Context); err != nil {
				return friendly(err)
			}

			matched := a.board.Filter(c.String("filter"))
			printProdutos(matched)
			if term := c.String("filter"); term != `` {
				fmt.Printf("%d of %d products match %q\n", len(matched), a.board.Len(), term)
			}
			return nil
		},
	}
}

func searchCommand(a *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "search products by name on the server",
		ArgsUsage: "<nome>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("usage: produtos search <nome>", 1)
			}
			if err := a.requireSession(c); err != nil {
				return err
			}

			produtos, err := a.board.Search(c.Context, c.Args().First())
			if err != nil {
				return friendly(err)
			}
			printProdutos(produtos)
			return nil
		},
	}
}

func getCommand(a *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "show one product",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id, err := parseID(c)
			if err != nil {
				return err
			}
			if err := a.requireSession(c); err != nil {
				return err
			}

			p, err := a.client.GetProduto(c.Context, id)
			if err != nil {
				return friendly(err)
			}
			printProdutos([]produto.Produto{p})
			return nil
		},
	}
}

func produtoFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "nome", Usage: "product name (required)"},
		&cli.StringFlag{Name: "descricao", Usage: "product description"},
		&cli.StringFlag{Name: "preco", Usage: "price, e.g. 129.90 or 129,90 (required)"},
		&cli.StringFlag{Name: "categoria", Usage: "product category (required)"},
	}
}

func inputFromFlags(c *cli.Context) produto.Input {
	return produto.Input{
		Nome:      c.String("nome"),
		Descricao: c.String("descricao"),
		Preco:     c.String("preco"),
		Categoria: c.String("categoria"),
	}
}

func createCommand(a *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "create a product",
		Flags: produtoFlags(),
		Action: func(c *cli.Context) error {
			if err := a.requireSession(c); err != nil {
				return err
			}

			created, err := a.client.CreateProduto(c.Context, inputFromFlags(c))
			if err != nil {
				return friendly(err)
			}
			fmt.Printf("created product %d\n", created.ID)
			return nil
		},
	}
}

func updateCommand(a *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "update a product",
		ArgsUsage: "<id>",
		Flags:     produtoFlags(),
		Action: func(c *cli.Context) error {
			id, err := parseID(c)
			if err != nil {
				return err
			}
			if err := a.requireSession(c); err != nil {
				return err
			}

			updated, err := a.client.UpdateProduto(c.Context, id, inputFromFlags(c))
			if err != nil {
				return friendly(err)
			}
			fmt.Printf("updated product %d\n", updated.ID)
			return nil
		},
	}
}

func deleteCommand(a *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "delete a product",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "skip the confirmation prompt"},
		},
		Action: func(c *cli.Context) error {
			id, err := parseID(c)
			if err != nil {
				return err
			}
			if err := a.requireSession(c); err != nil {
				return err
			}

			if !c.Bool("yes") {
				answer, err := promptLine(fmt.Sprintf("delete product %d? [y/N] ", id))
				if err != nil {
					return err
				}
				if answer != "y" && answer != "Y" {
					fmt.Println("aborted")
					return nil
				}
			}

			if err := a.client.DeleteProduto(c.Context, id); err != nil {
				return friendly(err)
			}
			fmt.Printf("deleted product %d\n", id)
			return nil
		},
	}
}

func parseID(c *cli.Context) (int64, error) {
	if c.NArg() != 1 {
		return 0, cli.Exit(fmt.Sprintf("usage: produtos %s <id>", c.Command.Name), 1)
	}
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return 0, cli.Exit("id must be a number", 1)
	}
	return id, nil
}

func printProdutos(produtos []produto.Produto) {
	if len(produtos) == 0 {
		fmt.Println("no products")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOME\tPRECO\tCATEGORIA\tDESCRICAO")
	for _, p := range produtos {
		descricao := ``
		if p.Descricao != nil {
			descricao = *p.Descricao
		}
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%s\t%s\n", p.ID, p.Nome, p.Preco, p.Categoria, descricao)
	}
	_ = w.Flush()
}
